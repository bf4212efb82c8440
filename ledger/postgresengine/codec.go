package postgresengine

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/arelgame/coinhouse/ledger"
)

var (
	// ErrEncodingHoldersFailed is returned when the holder list cannot be
	// serialized for the JSONB column.
	ErrEncodingHoldersFailed = errors.New("failed to encode account holders")

	// ErrDecodingHoldersFailed is returned when a stored holder list cannot
	// be deserialized.
	ErrDecodingHoldersFailed = errors.New("failed to decode account holders")
)

// holderRecord is the JSONB form of one account holder.
type holderRecord struct {
	Persona string `json:"persona"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

func encodeHolders(holders []ledger.AccountHolder) (string, error) {
	records := make([]holderRecord, 0, len(holders))

	for _, holder := range holders {
		records = append(records, holderRecord{
			Persona: holder.HolderID.String(),
			Type:    string(holder.HolderType),
			Role:    string(holder.Role),
			Name:    holder.Name,
		})
	}

	encoded, err := jsoniter.ConfigFastest.MarshalToString(records)
	if err != nil {
		return "", errors.Join(ErrEncodingHoldersFailed, err)
	}

	return encoded, nil
}

func decodeHolders(payload []byte) ([]ledger.AccountHolder, error) {
	var records []holderRecord

	if err := jsoniter.ConfigFastest.Unmarshal(payload, &records); err != nil {
		return nil, errors.Join(ErrDecodingHoldersFailed, err)
	}

	holders := make([]ledger.AccountHolder, 0, len(records))

	for _, record := range records {
		persona, err := ledger.ParsePersonaID(record.Persona)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDecodingHoldersFailed, err.Error())
		}

		holderType, err := ledger.ParseHolderType(record.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDecodingHoldersFailed, err.Error())
		}

		role, err := ledger.ParseHolderRole(record.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDecodingHoldersFailed, err.Error())
		}

		holders = append(holders, ledger.AccountHolder{
			HolderID:   persona,
			HolderType: holderType,
			Role:       role,
			Name:       record.Name,
		})
	}

	return holders, nil
}
