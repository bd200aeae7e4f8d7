// Package domain contains the core entities of the storefront: users and
// referrals, the registrar's availability and registration results, and the
// in-flight state of a purchase. These types are free of infrastructure
// concerns so they can be shared by the registrar, payment, storage and HTTP
// packages.
package domain
