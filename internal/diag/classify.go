package diag

import (
	"fmt"

	"github.com/agentstation/genaicheck/internal/auth/adc"
)

// Kind is the family of an ambient credential.
type Kind string

const (
	// KindServiceAccount is a service account key file.
	KindServiceAccount Kind = "service-account"
	// KindUser is a gcloud user OAuth credential.
	KindUser Kind = "user"
	// KindMetadata is a credential served by the metadata server.
	KindMetadata Kind = "metadata"
	// KindUnknown is anything else.
	KindUnknown Kind = "unknown"
)

// Classification is the result of Classify. TypeName is only set for
// KindUnknown and holds the Go type of the credential.
type Classification struct {
	Kind     Kind   `yaml:"kind"`
	TypeName string `yaml:"type_name,omitempty"`
	// ADCType is the "type" field of credentials that carry one but are not
	// special-cased, e.g. external_account.
	ADCType string `yaml:"adc_type,omitempty"`
}

// Description is the human-readable form logged as "Using <description>".
func (c Classification) Description() string {
	switch c.Kind {
	case KindServiceAccount:
		return "service-account key file"
	case KindUser:
		return "gcloud user (OAuth) credentials"
	case KindMetadata:
		return "Compute Engine / metadata-server credentials"
	default:
		return fmt.Sprintf("unknown credentials (%s)", c.TypeName)
	}
}

// Classify matches the exact concrete type of cred. It never fails.
func Classify(cred adc.Credential) Classification {
	switch c := cred.(type) {
	case *adc.ServiceAccount:
		return Classification{Kind: KindServiceAccount}
	case *adc.AuthorizedUser:
		return Classification{Kind: KindUser}
	case *adc.ComputeMetadata:
		return Classification{Kind: KindMetadata}
	case *adc.Other:
		return Classification{Kind: KindUnknown, TypeName: fmt.Sprintf("%T", c), ADCType: c.CredentialType()}
	default:
		return Classification{Kind: KindUnknown, TypeName: fmt.Sprintf("%T", cred)}
	}
}
