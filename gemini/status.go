package gemini

import "fmt"

// StatusCode is a two digit Gemini response status.
// Only the codes listed below are valid; any other value fails to parse.
type StatusCode int

// Provides status codes.
const (
	StatusInput                     StatusCode = 10
	StatusSensitiveInput            StatusCode = 11
	StatusSuccess                   StatusCode = 20
	StatusRedirectTemporary         StatusCode = 30
	StatusRedirectPermanent         StatusCode = 31
	StatusTemporaryFailure          StatusCode = 40
	StatusServerUnavailable         StatusCode = 41
	StatusCGIError                  StatusCode = 42
	StatusProxyError                StatusCode = 43
	StatusSlowDown                  StatusCode = 44
	StatusPermanentFailure          StatusCode = 50
	StatusNotFound                  StatusCode = 51
	StatusGone                      StatusCode = 52
	StatusProxyRequestRefused       StatusCode = 53
	StatusBadRequest                StatusCode = 59
	StatusClientCertificateRequired StatusCode = 60
	StatusCertificateNotAuthorised  StatusCode = 61
	StatusCertificateNotValid       StatusCode = 62
)

var statusNames = map[StatusCode]string{
	StatusInput:                     "Input",
	StatusSensitiveInput:            "SensitiveInput",
	StatusSuccess:                   "Success",
	StatusRedirectTemporary:         "RedirectTemporary",
	StatusRedirectPermanent:         "RedirectPermanent",
	StatusTemporaryFailure:          "TemporaryFailure",
	StatusServerUnavailable:         "ServerUnavailable",
	StatusCGIError:                  "CGIError",
	StatusProxyError:                "ProxyError",
	StatusSlowDown:                  "SlowDown",
	StatusPermanentFailure:          "PermanentFailure",
	StatusNotFound:                  "NotFound",
	StatusGone:                      "Gone",
	StatusProxyRequestRefused:       "ProxyRequestRefused",
	StatusBadRequest:                "BadRequest",
	StatusClientCertificateRequired: "ClientCertificateRequired",
	StatusCertificateNotAuthorised:  "CertificateNotAuthorised",
	StatusCertificateNotValid:       "CertificateNotValid",
}

// Valid returns true if the code is one of the defined status codes.
func (code StatusCode) Valid() bool {
	_, ok := statusNames[code]
	return ok
}

func (code StatusCode) String() string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return fmt.Sprintf("InvalidStatus%d", int(code))
}

// Category returns the category named by the code's first digit, or
// CategoryNone for an invalid code.
func (code StatusCode) Category() Category {
	if !code.Valid() {
		return CategoryNone
	}
	return Category(code / 10)
}

// Category groups status codes by their first digit.
type Category int

// Category constants, one per status code leading digit.
const (
	CategoryNone                      Category = 0
	CategoryInput                     Category = 1
	CategorySuccess                   Category = 2
	CategoryRedirect                  Category = 3
	CategoryTemporaryFailure          Category = 4
	CategoryPermanentFailure          Category = 5
	CategoryClientCertificateRequired Category = 6
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "None"
	case CategoryInput:
		return "Input"
	case CategorySuccess:
		return "Success"
	case CategoryRedirect:
		return "Redirect"
	case CategoryTemporaryFailure:
		return "TemporaryFailure"
	case CategoryPermanentFailure:
		return "PermanentFailure"
	case CategoryClientCertificateRequired:
		return "ClientCertificateRequired"
	default:
		return fmt.Sprintf("InvalidCategory%d", int(c))
	}
}
