package record

import (
	"fmt"
	"regexp"
	"strings"
)

// listMarker starts every record line in the backing file.
const listMarker = "- "

// pendingToken marks an unapproved record. Its absence means approved, which
// also keeps lines written before moderation existed readable.
const pendingToken = "(pending) "

// lineRe is the single canonical pattern for a persisted record line:
//
//	- **<hash>** [<tap>] (pending) <alias>: "<message>" _(<createdAt>)_
//
// The format does not escape delimiters. An alias containing `: "` or a
// message containing `" _(` will corrupt decoding; that is a documented
// limitation of the on-disk format, kept for compatibility with existing
// entries.
var lineRe = regexp.MustCompile(`^- \*\*([A-Za-z0-9]+)\*\* \[([^\]]+)\] (\(pending\) )?(.*?): "(.*)" _\((.*)\)_$`)

// Encode serializes a record to its canonical line, without a trailing newline.
func Encode(r Record) string {
	marker := ""
	if r.Status == StatusPending {
		marker = pendingToken
	}
	return fmt.Sprintf(`- **%s** [%s] %s%s: "%s" _(%s)_`, r.Hash, r.Tap, marker, r.Alias, r.Message, r.CreatedAt)
}

// Decode parses one line back into a record. It reports false for anything
// that does not match the canonical pattern: headers, blank lines, malformed
// hand edits. A successful match with the pending token yields StatusPending,
// otherwise StatusApproved.
func Decode(line string) (Record, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return Record{}, false
	}
	status := StatusApproved
	if m[3] != "" {
		status = StatusPending
	}
	return Record{
		Hash:      m[1],
		Tap:       Tap(m[2]),
		Alias:     m[4],
		Message:   m[5],
		CreatedAt: m[6],
		Status:    status,
	}, true
}

// DecodeLog parses a full backing file. Only lines starting with the list
// marker are considered, invalid lines are dropped, and the result is
// reversed so the most recently appended record comes first. Callers rely on
// that order and must not re-sort.
func DecodeLog(content string) []Record {
	records := make([]Record, 0)
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, listMarker) {
			continue
		}
		if rec, ok := Decode(line); ok {
			records = append(records, rec)
		}
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records
}

// ApproveLine rewrites a raw pending line to its approved form by dropping
// the pending token. Every other byte of the line is left intact.
func ApproveLine(line string) string {
	return strings.Replace(line, pendingToken, "", 1)
}
