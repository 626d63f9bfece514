package score

// WERResult holds word error rate counts for one item or a whole corpus.
type WERResult struct {
	WER           float64 // edits per reference word, 0 when RefWords is 0
	Substitutions int
	Insertions    int
	Deletions     int
	RefWords      int
}

// Edits returns the total number of word edits.
func (r WERResult) Edits() int {
	return r.Substitutions + r.Insertions + r.Deletions
}

// add accumulates o into r and recomputes the rate.
func (r *WERResult) add(o WERResult) {
	r.Substitutions += o.Substitutions
	r.Insertions += o.Insertions
	r.Deletions += o.Deletions
	r.RefWords += o.RefWords
	r.WER = rate(r.Edits(), r.RefWords)
}

// ComputeWER aligns hypothesis against reference by minimum edit distance
// and counts substitutions, insertions and deletions. Both are token
// sequences of already normalized text.
func ComputeWER(reference, hypothesis []string) WERResult {
	n, m := len(reference), len(hypothesis)
	if n == 0 {
		return WERResult{Insertions: m}
	}

	// d[i][j] is the edit distance between reference[:i] and hypothesis[:j].
	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if reference[i-1] == hypothesis[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = 1 + min(d[i-1][j-1], d[i-1][j], d[i][j-1])
		}
	}

	var res WERResult
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && reference[i-1] == hypothesis[j-1]:
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			res.Substitutions++
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			res.Deletions++
			i--
		default:
			res.Insertions++
			j--
		}
	}
	res.RefWords = n
	res.WER = rate(res.Edits(), n)
	return res
}

// bestWER scores hypothesis against every reference and keeps the one with
// the fewest edits. Ties go to the earlier reference. The empty token of an
// empty transcript is not a word.
func bestWER(references [][]string, hypothesis []string) WERResult {
	hypothesis = words(hypothesis)
	var best WERResult
	for i, ref := range references {
		r := ComputeWER(words(ref), hypothesis)
		if i == 0 || r.Edits() < best.Edits() {
			best = r
		}
	}
	return best
}

func rate(edits, refWords int) float64 {
	if refWords == 0 {
		return 0
	}
	return float64(edits) / float64(refWords)
}

func words(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
