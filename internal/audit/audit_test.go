package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func TestJSONLSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink := NewJSONLSink(path, nil)

	at := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	sink.Record(types.AuditRecord{Timestamp: at, Action: ActionCreate, LinkID: "l1", Actor: "alice"})
	sink.Record(types.AuditRecord{Timestamp: at, Action: ActionDelete, LinkID: "l1", Actor: "bob"})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []types.AuditRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec types.AuditRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, records, 2)
	assert.Equal(t, ActionCreate, records[0].Action)
	assert.Equal(t, "alice", records[0].Actor)
	assert.Equal(t, ActionDelete, records[1].Action)
	assert.Equal(t, "bob", records[1].Actor)
}

func TestJSONLSinkSwallowsFailures(t *testing.T) {
	// A directory path cannot be opened for appending; the sink must not
	// panic or surface the failure.
	sink := NewJSONLSink(t.TempDir(), nil)
	sink.Record(types.AuditRecord{Action: ActionExport})
}
