package chart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/natal/internal/domain"
)

// EncodeJSON serializes a Chart or SynastryResult to the self-describing
// JSON form consumers subset without recomputation. Map keys are emitted
// sorted, so equal values serialize byte-identically.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// EncodeMsgpack serializes to the compact msgpack form. Map keys are sorted
// for the same deterministic-bytes guarantee as JSON.
func EncodeMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeChartJSON restores a chart serialized by EncodeJSON.
func DecodeChartJSON(data []byte) (*domain.Chart, error) {
	var c domain.Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return &c, nil
}

// DecodeSynastryJSON restores a synastry result serialized by EncodeJSON.
func DecodeSynastryJSON(data []byte) (*domain.SynastryResult, error) {
	var r domain.SynastryResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode synastry result: %w", err)
	}
	return &r, nil
}
