// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/keep-export/pkg/types"
)

// JSON field names of a Keep Takeout record.
const (
	fieldTitle       = "title"
	fieldText        = "textContent"
	fieldList        = "listContent"
	fieldAttachments = "attachments"
	fieldLabels      = "labels"
	fieldTrashed     = "isTrashed"
	fieldArchived    = "isArchived"
	fieldPinned      = "isPinned"
	fieldCreated     = "createdTimestampUsec"
)

const (
	archivedMarker = "[ARCHIVED] "
	pinnedMarker   = "[PINNED] "
)

// record is a Keep JSON object with its values left undecoded, so presence
// and type can be checked field by field.
type record map[string]json.RawMessage

// has reports whether key is present with a non-null value.
func (r record) has(key string) bool {
	raw, ok := r[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decode unmarshals the value at key into v. It must only be called when
// has(key) is true.
func (r record) decode(key string, v any) error {
	if err := json.Unmarshal(r[key], v); err != nil {
		return reject(types.RejectUnsupportedType, "field %q: %v", key, err)
	}
	return nil
}

// flag decodes an optional boolean field, defaulting to false.
func (r record) flag(key string) (bool, error) {
	if !r.has(key) {
		return false, nil
	}
	var b bool
	if err := r.decode(key, &b); err != nil {
		return false, err
	}
	return b, nil
}

type checklistItem struct {
	Text      string `json:"text"`
	IsChecked bool   `json:"isChecked"`
}

// ParseNote normalizes one raw Keep record into a Note. Every failure is a
// *RecordError whose reason names the rejection.
func ParseNote(data []byte, opts Options) (types.Note, error) {
	opts = opts.withDefaults()

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return types.Note{}, reject(types.RejectParse, "invalid JSON: %v", err)
	}
	if rec == nil {
		return types.Note{}, reject(types.RejectParse, "record is not a JSON object")
	}

	for _, key := range []string{fieldTrashed, fieldCreated} {
		if !rec.has(key) {
			return types.Note{}, reject(types.RejectMissingField, "missing %q", key)
		}
	}

	var trashed bool
	if err := rec.decode(fieldTrashed, &trashed); err != nil {
		return types.Note{}, err
	}
	if trashed {
		return types.Note{}, reject(types.RejectTrashed, "note %q is trashed", rawTitle(rec))
	}

	var usec int64
	if err := rec.decode(fieldCreated, &usec); err != nil {
		return types.Note{}, err
	}
	createdAt := time.UnixMicro(usec).In(opts.Location)

	title, err := parseTitle(rec)
	if err != nil {
		return types.Note{}, err
	}

	log := opts.Logger.WithField("title", rawTitle(rec))

	text, err := parseText(rec, log)
	if err != nil {
		return types.Note{}, err
	}

	return types.Note{
		Title:       title,
		CreatedAt:   createdAt,
		Text:        text,
		Attachments: parseAttachments(rec, log),
		Labels:      parseLabels(rec, log),
	}, nil
}

func parseTitle(rec record) (string, error) {
	if !rec.has(fieldTitle) {
		return "", nil
	}
	var title string
	if err := rec.decode(fieldTitle, &title); err != nil {
		return "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil
	}

	archived, err := rec.flag(fieldArchived)
	if err != nil {
		return "", err
	}
	pinned, err := rec.flag(fieldPinned)
	if err != nil {
		return "", err
	}
	switch {
	case archived:
		return archivedMarker + title, nil
	case pinned:
		return pinnedMarker + title, nil
	}
	return title, nil
}

func parseText(rec record, log logrus.FieldLogger) (string, error) {
	if rec.has(fieldText) {
		var text string
		if err := rec.decode(fieldText, &text); err != nil {
			return "", err
		}
		return text, nil
	}

	if !rec.has(fieldList) {
		log.Debug("note has no textContent or listContent, no text extracted")
		return "", nil
	}

	log.Debug("note has no textContent, converting checklist")
	var items []checklistItem
	if err := rec.decode(fieldList, &items); err != nil {
		return "", err
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		box := "[ ]"
		if item.IsChecked {
			box = "[x]"
		}
		fmt.Fprintf(&b, "* %s %s", box, item.Text)
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// parseAttachments returns the filePath of every well-formed attachment
// entry. Backslashes are normalized to forward slashes.
func parseAttachments(rec record, log logrus.FieldLogger) []string {
	var paths []string
	for i, entry := range subEntries(rec, fieldAttachments) {
		path, ok := stringKey(entry, "filePath")
		if !ok {
			log.WithField("index", i).Debug("dropping attachment without filePath")
			continue
		}
		paths = append(paths, strings.ReplaceAll(path, `\`, "/"))
	}
	return paths
}

func parseLabels(rec record, log logrus.FieldLogger) []string {
	var names []string
	for i, entry := range subEntries(rec, fieldLabels) {
		name, ok := stringKey(entry, "name")
		if !ok {
			log.WithField("index", i).Debug("dropping label without name")
			continue
		}
		names = append(names, name)
	}
	return names
}

// subEntries returns the elements of a list field. A missing or non-list
// field yields nil.
func subEntries(rec record, key string) []json.RawMessage {
	if !rec.has(key) {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(rec[key], &entries); err != nil {
		return nil
	}
	return entries
}

// stringKey reads a string value from a JSON object. It reports false when
// entry is not an object, lacks key, or holds a non-string there.
func stringKey(entry json.RawMessage, key string) (string, bool) {
	var obj record
	if err := json.Unmarshal(entry, &obj); err != nil || !obj.has(key) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(obj[key], &s); err != nil {
		return "", false
	}
	return s, true
}

// rawTitle returns the record title for messages, or "Untitled".
func rawTitle(rec record) string {
	var title string
	if rec.has(fieldTitle) && json.Unmarshal(rec[fieldTitle], &title) == nil && title != "" {
		return title
	}
	return "Untitled"
}
