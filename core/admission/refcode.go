package admission

import "fmt"

// ReferenceGenerator formats human-facing application reference codes for
// one admission cycle, e.g. LHS-2024-001. Sequence allocation lives in the
// repository so uniqueness holds across processes.
type ReferenceGenerator struct {
	Prefix string
	Year   int
}

func (g ReferenceGenerator) Format(seq int) string {
	return fmt.Sprintf("%s-%d-%03d", g.Prefix, g.Year, seq)
}
