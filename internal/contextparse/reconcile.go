package contextparse

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/receiptbot/bill-splitter/internal/entity"
)

// assignmentOrder recovers the key order of the "assignments" object from the
// raw JSON. encoding/json maps do not preserve it, and the first-claim-wins
// duplicate policy depends on processing assignments in the model's given
// order.
func assignmentOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening {
		return nil, err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "assignments" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := dec.Token(); err != nil { // opening {
			return nil, err
		}
		var order []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if name, ok := nameTok.(string); ok {
				order = append(order, name)
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
		return order, nil
	}
	return nil, nil
}

// reconcile maps the model's name-based output back onto the canonical items.
// Claims are case-insensitive on item name; the first claim wins, assignments
// before shared items. Canonical items left unclaimed default to shared when
// the model listed participants explicitly, otherwise they are surfaced as
// unprocessed.
func reconcile(result ContextParsingResult, order []string, items []entity.ReceiptItem, logger *slog.Logger) *Reconciled {
	if logger == nil {
		logger = slog.Default()
	}

	lookup := make(map[string]entity.ReceiptItem, len(items))
	for _, it := range items {
		lookup[strings.ToLower(it.Name)] = it
	}

	// Safety net: keys the order scan missed still get processed, in sorted
	// order for determinism.
	inOrder := make(map[string]bool, len(order))
	for _, person := range order {
		inOrder[person] = true
	}
	var missing []string
	for person := range result.Assignments {
		if !inOrder[person] {
			missing = append(missing, person)
		}
	}
	sort.Strings(missing)
	order = append(order, missing...)

	claimed := make(map[string]bool, len(items))
	out := &Reconciled{}

	for _, person := range order {
		var owned []entity.ReceiptItem
		for _, name := range result.Assignments[person] {
			key := strings.ToLower(name)
			item, found := lookup[key]
			switch {
			case !found:
				logger.Warn("contextparse.reconcile.unmatched_item", "item", name, "person", person)
			case claimed[key]:
				logger.Warn("contextparse.reconcile.duplicate_claim", "item", name, "person", person)
			default:
				owned = append(owned, item)
				claimed[key] = true
			}
		}
		if len(owned) > 0 {
			out.Assignments = append(out.Assignments, entity.Assignment{Person: person, Items: owned})
		}
	}

	for _, name := range result.SharedItems {
		key := strings.ToLower(name)
		item, found := lookup[key]
		switch {
		case !found:
			logger.Warn("contextparse.reconcile.unmatched_shared_item", "item", name)
		case claimed[key]:
			logger.Warn("contextparse.reconcile.duplicate_shared_claim", "item", name)
		default:
			out.SharedItems = append(out.SharedItems, item)
			claimed[key] = true
		}
	}

	participants := make(map[string]bool, len(result.Participants))
	for _, person := range result.Participants {
		if person != "" {
			participants[person] = true
		}
	}

	// Canonical items neither assigned nor shared. Duplicate names collapse
	// to a single claim, matching the lookup's semantics. Defaulting to
	// shared keys off the model's explicit participant list, before the
	// union below; assignment keys alone are not evidence the whole group is
	// known.
	var unprocessed []entity.ReceiptItem
	handled := make(map[string]bool, len(items))
	for _, it := range items {
		key := strings.ToLower(it.Name)
		if !claimed[key] && !handled[key] {
			unprocessed = append(unprocessed, lookup[key])
			handled[key] = true
		}
	}
	if len(unprocessed) > 0 {
		names := make([]string, len(unprocessed))
		for i, it := range unprocessed {
			names[i] = it.Name
		}
		if len(participants) > 0 {
			logger.Warn("contextparse.reconcile.defaulting_to_shared", "items", names)
			out.SharedItems = append(out.SharedItems, unprocessed...)
		} else {
			logger.Warn("contextparse.reconcile.unprocessed_items", "items", names)
			out.Unprocessed = unprocessed
		}
	}

	// A person with items is a participant whether or not the model listed
	// them.
	for _, a := range out.Assignments {
		participants[a.Person] = true
	}

	out.Participants = make([]string, 0, len(participants))
	for person := range participants {
		out.Participants = append(out.Participants, person)
	}
	sort.Strings(out.Participants)

	if len(out.Participants) == 0 && (len(out.Assignments) > 0 || len(out.SharedItems) > 0) {
		logger.Warn("contextparse.reconcile.no_participants_identified")
	}

	return out
}
