package auditlog

import (
	"bytes"
	"encoding/json"
	"sort"
)

// genesis is the prev_hash value for a log's first record.
const genesis = "genesis"

// unsigned marks a record produced without a signing key.
const unsigned = "unsigned"

// Record is a single append-only audit log entry. Field order here is
// the key order of each line as written to the log (json.Marshal
// follows struct order); the key order of the hashed and signed form
// is fixed separately by canonicalJSON.
type Record struct {
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	PrevHash    string `json:"prev_hash"`
	CurrentHash string `json:"current_hash"`
	Signature   string `json:"signature"`
}

// canonicalJSON serializes the record minus signature and
// current_hash with sorted keys and compact separators, the form used
// for both current_hash computation and signing.
func canonicalJSON(r Record) ([]byte, error) {
	fields := map[string]string{
		"timestamp": r.Timestamp,
		"action":    r.Action,
		"prev_hash": r.PrevHash,
	}
	return marshalSorted(fields)
}

// marshalSorted emits a JSON object with lexically sorted keys and no
// insignificant whitespace, so independent implementations hash and
// sign byte-identical input for the same field values.
func marshalSorted(fields map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
