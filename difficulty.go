package kst

import "sort"

// ItemDifficulty is the per-item difficulty breakdown: the structural,
// empirical, and BLIM-based measures that contributed to the combined
// score, each normalised to [0,1], plus the combination itself. A
// measure is absent (its presence flag false) when the inputs needed to
// compute it were not supplied.
type ItemDifficulty struct {
	ItemID               string
	StructuralDepth      int // raw prerequisite count, before normalisation
	StructuralDifficulty float64
	HasStructural        bool
	EmpiricalDifficulty  float64
	HasEmpirical         bool
	BLIMDifficulty       float64
	HasBLIM              bool
	CombinedDifficulty   float64
}

// DifficultyReport collects the ItemDifficulty of every item in a
// domain, ordered by item id.
type DifficultyReport struct {
	Items []ItemDifficulty
}

// ForItem looks up the breakdown for a single item id.
func (r DifficultyReport) ForItem(id string) (ItemDifficulty, bool) {
	for _, d := range r.Items {
		if d.ItemID == id {
			return d, true
		}
	}
	return ItemDifficulty{}, false
}

// EstimateItemDifficulty computes a DifficultyReport from whichever
// inputs are available: rel supplies the structural measure, data the
// empirical measure, params the BLIM-based measure. Any of rel, data, or
// params may be the zero value, in which case that measure is omitted
// (HasX=false) and excluded from the combination. Passing all three zero
// values is a programmer error the caller should avoid; it yields every
// item at combined difficulty 0.
func EstimateItemDifficulty(domain Domain, rel *SurmiseRelation, data *ResponseData, params *BLIMParameters) DifficultyReport {
	ids := domain.ItemIDs()

	structuralDepth := make(map[string]int, len(ids))
	maxDepth := 0
	if rel != nil {
		for _, id := range ids {
			d := len(rel.PrerequisitesOf(id))
			structuralDepth[id] = d
			if d > maxDepth {
				maxDepth = d
			}
		}
	}

	empirical := make(map[string]float64, len(ids))
	if data != nil {
		for _, id := range ids {
			wrong, total := 0, 0
			for _, pat := range data.Patterns() {
				total++
				if !pat[id] {
					wrong++
				}
			}
			if total > 0 {
				empirical[id] = float64(wrong) / float64(total)
			}
		}
	}

	report := DifficultyReport{Items: make([]ItemDifficulty, 0, len(ids))}
	for _, id := range ids {
		d := ItemDifficulty{ItemID: id}

		if rel != nil {
			d.HasStructural = true
			d.StructuralDepth = structuralDepth[id]
			if maxDepth > 0 {
				d.StructuralDifficulty = float64(structuralDepth[id]) / float64(maxDepth)
			}
		}
		if data != nil {
			d.HasEmpirical = true
			d.EmpiricalDifficulty = empirical[id]
		}
		if params != nil {
			d.HasBLIM = true
			d.BLIMDifficulty = clamp01(params.Slip(id) + (1 - params.Guess(id)))
		}

		sum, n := 0.0, 0
		if d.HasStructural {
			sum += d.StructuralDifficulty
			n++
		}
		if d.HasEmpirical {
			sum += d.EmpiricalDifficulty
			n++
		}
		if d.HasBLIM {
			sum += d.BLIMDifficulty
			n++
		}
		if n > 0 {
			d.CombinedDifficulty = sum / float64(n)
		}
		report.Items = append(report.Items, d)
	}

	sort.Slice(report.Items, func(i, j int) bool { return report.Items[i].ItemID < report.Items[j].ItemID })
	return report
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
