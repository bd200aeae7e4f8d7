// Package opensrs implements registrar.Client against the OpenSRS XCP API.
// Requests are OPS envelopes signed with HMAC-SHA1; replies are scanned for a
// handful of known items instead of being decoded against a schema.
package opensrs

import (
	"crypto/rand"
	"encoding/xml"
	"strconv"
	"sync/atomic"

	"domainshop/pkg/domain"
	"domainshop/pkg/serrors"
)

const (
	envelopeVersion = "0.9"
	recipient       = "OpenSRS"
	protocol        = "XCP"
	object          = "domain"
)

// Credentials identify the reseller account.
type Credentials struct {
	// Username is sent as the envelope sender and the X-Username header.
	Username string
	// APIKey is the shared secret. It is embedded as security_key and keys the
	// request signature.
	APIKey string
}

// Request is a signed envelope ready to be sent. It is never modified after
// BuildRequest returns it.
type Request struct {
	Action     domain.RegistrarAction
	DomainName string
	Body       []byte
	Signature  string
}

type item struct {
	Key   string   `xml:"key,attr"`
	Value string   `xml:",chardata"`
	Assoc *dtAssoc `xml:"dt_assoc,omitempty"`
}

type dtAssoc struct {
	Items []item `xml:"item"`
}

type header struct {
	Version     string `xml:"version"`
	MsgID       string `xml:"msg_id"`
	Sender      string `xml:"sender"`
	Recipient   string `xml:"recipient"`
	SecurityKey string `xml:"security_key"`
}

type envelope struct {
	XMLName   xml.Name `xml:"OPS_envelope"`
	Header    header   `xml:"header"`
	DataBlock dtAssoc  `xml:"body>data_block>dt_assoc"`
}

func value(key, v string) item { return item{Key: key, Value: v} }

func assoc(key string, items ...item) item {
	return item{Key: key, Assoc: &dtAssoc{Items: items}}
}

// wireAction maps a registrar action to its XCP action name.
func wireAction(action domain.RegistrarAction) (string, bool) {
	switch action {
	case domain.RegistrarActionLookup:
		return "lookup", true
	case domain.RegistrarActionRegister:
		return "sw_register", true
	default:
		return "", false
	}
}

// Builder builds signed envelopes for one reseller account. It is safe for
// concurrent use.
type Builder struct {
	creds Credentials
	seq   atomic.Uint64

	// password generates the registrant's initial account password. It is
	// called once per registration envelope.
	password func() string
}

// NewBuilder returns a Builder for creds.
func NewBuilder(creds Credentials) *Builder {
	return &Builder{creds: creds, password: rand.Text}
}

// BuildRequest serializes and signs an envelope for action on domainName.
// registrant is required for register and ignored for lookup.
func (b *Builder) BuildRequest(action domain.RegistrarAction,
	domainName string,
	registrant *domain.Registrant) (Request, error) {
	if b.creds.APIKey == "" {
		return Request{}, serrors.With(serrors.ErrConfiguration, "registrar api key is not configured")
	}
	name, ok := wireAction(action)
	if !ok {
		return Request{}, serrors.With(serrors.ErrBadRequest, "unknown registrar action %q", action)
	}

	attrs := []item{value("domain", domainName)}
	if action == domain.RegistrarActionRegister {
		if registrant == nil || registrant.Email == "" {
			return Request{}, serrors.With(serrors.ErrBadRequest, "registrant email is required for registration")
		}
		attrs = append(attrs,
			value("reg_username", registrant.Email),
			value("reg_password", b.password()),
			value("period", "1"),
			value("reg_type", "new"),
			assoc("contact_set",
				assoc("owner",
					value("first_name", registrant.FirstName),
					value("last_name", registrant.LastName),
					value("email", registrant.Email),
					value("country", registrant.Country),
				),
			),
		)
	}

	env := envelope{
		Header: header{
			Version:     envelopeVersion,
			MsgID:       strconv.FormatUint(b.seq.Add(1), 10),
			Sender:      b.creds.Username,
			Recipient:   recipient,
			SecurityKey: b.creds.APIKey,
		},
		DataBlock: dtAssoc{Items: []item{
			value("protocol", protocol),
			value("action", name),
			value("object", object),
			assoc("attributes", attrs...),
		}},
	}

	out, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return Request{}, serrors.Wrap(serrors.ErrInternal, err, "could not marshal envelope")
	}
	body := append([]byte(xml.Header), out...)

	sig, err := Sign(body, b.creds.APIKey)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Action:     action,
		DomainName: domainName,
		Body:       body,
		Signature:  sig,
	}, nil
}
