package amrtex

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DerivativeStates returns X for every dX/dt fraction in mathml, in document
// order. Partial derivatives are included.
func DerivativeStates(mathml string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(mathml))
	if err != nil {
		return nil, err
	}

	var states []string
	doc.Find("mfrac").Each(func(_ int, frac *goquery.Selection) {
		parts := frac.Children()
		if parts.Length() != 2 {
			return
		}
		den := strings.TrimSpace(parts.Eq(1).Text())
		if den != "dt" && den != "∂t" {
			return
		}
		num := parts.Eq(0).Children()
		if num.Length() < 2 {
			return
		}
		d := strings.TrimSpace(num.First().Text())
		if d != "d" && d != "∂" {
			return
		}
		state := strings.TrimSpace(num.Slice(1, goquery.ToEnd).Text())
		if state != "" {
			states = append(states, state)
		}
	})
	return states, nil
}

// Identifiers returns the distinct <mi> texts in mathml in document order.
func Identifiers(mathml string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(mathml))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var ids []string
	doc.Find("mi").Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimSpace(s.Text())
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	})
	return ids, nil
}
