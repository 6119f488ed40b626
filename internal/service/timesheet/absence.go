package timesheet

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// A day with at least this many canonical slots marked absent is a full absence.
const fullAbsenceThreshold = 3

// UnspecifiedAbsenceLabel stands in for absence markers without a kind.
const UnspecifiedAbsenceLabel = "Não especificado"

type absenceKindRule struct {
	slot     timesheet.Slot
	keywords []string // folded; all must be present
}

// absenceKindRules is checked in order; the first rule whose keywords all
// appear in the folded kind wins.
var absenceKindRules = []absenceKindRule{
	{slot: timesheet.SlotEntry, keywords: []string{"entrada", "manha"}},
	{slot: timesheet.SlotLunchOut, keywords: []string{"saida", "manha"}},
	{slot: timesheet.SlotLunchIn, keywords: []string{"entrada", "tarde"}},
	{slot: timesheet.SlotExit, keywords: []string{"saida", "tarde"}},
}

// ClassifyAbsenceKind maps free-text absence kinds such as "Entrada Manhã" to a
// canonical slot. Matching ignores case and accents.
func ClassifyAbsenceKind(kind string) (timesheet.Slot, bool) {
	folded := foldText(kind)
	if folded == "" {
		return "", false
	}
	for _, rule := range absenceKindRules {
		matched := true
		for _, kw := range rule.keywords {
			if !strings.Contains(folded, kw) {
				matched = false
				break
			}
		}
		if matched {
			return rule.slot, true
		}
	}
	return "", false
}

// foldText strips combining marks and applies Unicode case folding.
// Transformers are stateful, so a fresh chain is built per call.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.TrimSpace(cases.Fold().String(stripped))
}

// AggregateAbsences summarizes the absence markers among punches. Canonical
// slots are listed in day order, followed by unmapped kinds sorted verbatim.
// Markers share the same local-noon timestamp, so their input order carries
// no meaning.
func AggregateAbsences(punches []timesheet.RawPunch) timesheet.AbsenceInfo {
	marked := make(map[timesheet.Slot]bool, len(timesheet.CanonicalSlots))
	unmapped := make([]string, 0)
	rawCount := 0

	for _, p := range punches {
		if !p.MarkedAbsent {
			continue
		}
		rawCount++

		if slot, ok := ClassifyAbsenceKind(p.AbsenceKind); ok {
			marked[slot] = true
			continue
		}

		label := strings.TrimSpace(p.AbsenceKind)
		if label == "" {
			label = UnspecifiedAbsenceLabel
		}
		if !slices.Contains(unmapped, label) {
			unmapped = append(unmapped, label)
		}
	}
	slices.Sort(unmapped)

	partial := make([]string, 0, len(marked)+len(unmapped))
	for _, slot := range timesheet.CanonicalSlots {
		if marked[slot] {
			partial = append(partial, slot.Label())
		}
	}
	partial = append(partial, unmapped...)

	return timesheet.AbsenceInfo{
		HasAbsence:    rawCount > 0,
		IsFullAbsence: len(marked) >= fullAbsenceThreshold,
		PartialSlots:  partial,
		RawCount:      rawCount,
	}
}
