// Package auditlog implements a tamper-evident, hash-chained,
// append-only log: one JSON record per line, each chained to the
// previous line's verbatim bytes, optionally Ed25519-signed.
package auditlog

import (
	"bufio"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ursafe/vault-engine/cryptoengine"
)

// Append reads the last non-empty line of the log at path, chains a
// new record for action off of it, signs it with signKey if non-nil
// (otherwise signature is "unsigned"), and appends the serialized
// record plus a newline. The log file is created if it does not
// exist.
func Append(path string, action string, signKey ed25519.PrivateKey, log *logrus.Logger) (Record, error) {
	prevLine, err := lastNonEmptyLine(path)
	if err != nil {
		return Record{}, err
	}

	prevHash := genesis
	if prevLine != "" {
		sum := cryptoengine.Hash([]byte(prevLine))
		prevHash = hex.EncodeToString(sum[:])
	}

	rec := Record{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    action,
		PrevHash:  prevHash,
	}

	canon, err := canonicalJSON(rec)
	if err != nil {
		return Record{}, fmt.Errorf("%w: canonicalize: %v", ErrLogIO, err)
	}
	sum := cryptoengine.Hash(canon)
	rec.CurrentHash = hex.EncodeToString(sum[:])

	if signKey != nil {
		rec.Signature = hex.EncodeToString(ed25519.Sign(signKey, canon))
	} else {
		rec.Signature = unsigned
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("%w: marshal: %v", ErrLogIO, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return Record{}, fmt.Errorf("%w: open %s: %v", ErrLogIO, path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return Record{}, fmt.Errorf("%w: write %s: %v", ErrLogIO, path, err)
	}

	if log != nil {
		log.WithFields(logrus.Fields{"action": action, "current_hash": rec.CurrentHash}).Info("audit log entry appended")
	}
	return rec, nil
}

// ReadEntries parses every non-empty line of the log at path into a
// Record, without verifying the chain. A missing file yields an empty
// slice.
func ReadEntries(path string) ([]Record, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("auditlog: record %d: %w: %v", i, ErrEntryCorrupt, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Verify walks the log at path and checks the entire chain: genesis
// linkage on the first record, prev_hash against the SHA-256 of the
// previous line's verbatim bytes for every later record, and
// current_hash recomputed from the canonical form of each record. If
// pubKey is non-nil, any record whose signature is not "unsigned" is
// also Ed25519-verified. The returned error, if any, names the
// offending record's index.
func Verify(path string, pubKey ed25519.PublicKey) ([]Record, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("auditlog: record %d: %w: %v", i, ErrEntryCorrupt, err)
		}

		expectedPrev := genesis
		if i > 0 {
			sum := cryptoengine.Hash([]byte(lines[i-1]))
			expectedPrev = hex.EncodeToString(sum[:])
		}
		if rec.PrevHash != expectedPrev {
			return nil, fmt.Errorf("auditlog: record %d: %w", i, ErrChainBroken)
		}

		canon, err := canonicalJSON(rec)
		if err != nil {
			return nil, fmt.Errorf("auditlog: record %d: %w: %v", i, ErrEntryCorrupt, err)
		}
		sum := cryptoengine.Hash(canon)
		if rec.CurrentHash != hex.EncodeToString(sum[:]) {
			return nil, fmt.Errorf("auditlog: record %d: %w", i, ErrEntryCorrupt)
		}

		if pubKey != nil && rec.Signature != unsigned {
			sig, err := hex.DecodeString(rec.Signature)
			if err != nil || !ed25519.Verify(pubKey, canon, sig) {
				return nil, fmt.Errorf("auditlog: record %d: %w", i, ErrSignatureInvalid)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrLogIO, path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", ErrLogIO, path, err)
	}
	return lines, nil
}

func lastNonEmptyLine(path string) (string, error) {
	lines, err := readLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[len(lines)-1], nil
}
