// Package documents implements shared-account capability documents: a
// holder with the issue-shares permission issues a document bound to an
// account, hands it to another persona, and activating it joins that
// persona to the account with the role written into the document.
package documents

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/arelgame/coinhouse/ledger"
)

var (
	// ErrMalformedDocument is returned when a document payload cannot be decoded.
	ErrMalformedDocument = errors.New("malformed capability document")

	// ErrIncompleteDocument is returned when a decoded document misses a
	// required field.
	ErrIncompleteDocument = errors.New("capability document is missing required fields")
)

// CapabilityDocument is the transferable grant. It is serialized onto the
// carrier object (an in-game item) and decoded again at activation time.
type CapabilityDocument struct {
	Coinhouse  ledger.CoinhouseTag `json:"coinhouse"`
	Account    ledger.AccountID    `json:"account"`
	HolderType ledger.HolderType   `json:"holder_type"`
	Role       ledger.HolderRole   `json:"role"`
	ShareType  string              `json:"share_type"`
	Issuer     ledger.PersonaID    `json:"issuer"`
}

// BuildDocument creates a capability document for an account share.
func BuildDocument(
	coinhouse ledger.CoinhouseTag,
	account ledger.AccountID,
	holderType ledger.HolderType,
	role ledger.HolderRole,
	shareType string,
	issuer ledger.PersonaID,
) CapabilityDocument {
	return CapabilityDocument{
		Coinhouse:  coinhouse,
		Account:    account,
		HolderType: holderType,
		Role:       role,
		ShareType:  shareType,
		Issuer:     issuer,
	}
}

// Encode serializes the document for storage on its carrier.
func (d CapabilityDocument) Encode() ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	return jsoniter.ConfigFastest.Marshal(d)
}

// DecodeDocument deserializes a document payload and validates it.
func DecodeDocument(payload []byte) (CapabilityDocument, error) {
	var document CapabilityDocument

	if err := jsoniter.ConfigFastest.Unmarshal(payload, &document); err != nil {
		return CapabilityDocument{}, fmt.Errorf("%w: %s", ErrMalformedDocument, err.Error())
	}

	if err := document.validate(); err != nil {
		return CapabilityDocument{}, err
	}

	return document, nil
}

func (d CapabilityDocument) validate() error {
	if d.Coinhouse.IsZero() || d.Account.IsZero() || d.Issuer.IsZero() {
		return ErrIncompleteDocument
	}

	if _, err := ledger.ParseHolderType(string(d.HolderType)); err != nil {
		return fmt.Errorf("%w: %s", ErrIncompleteDocument, err.Error())
	}

	if _, err := ledger.ParseHolderRole(string(d.Role)); err != nil {
		return fmt.Errorf("%w: %s", ErrIncompleteDocument, err.Error())
	}

	return nil
}
