// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/profplot/taxonomy"
)

var headerFields = []string{
	"taxid",
	"rank",
	"taxpath",
	"percentage",
}

// ReadFile reads a profile from a file.
func ReadFile(name string) (*Profile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return p, nil
}

// Read reads a profile in the CAMI profiling format.
//
// Each sample starts with a set of header lines,
// the first one being the sample ID.
// The header of the data columns
// starts with "@@"
// and must contain the following fields:
//
//   - TAXID, the taxonomic ID of the taxon
//   - RANK, the rank of the taxon
//   - TAXPATH, the taxonomic IDs of the lineage of the taxon,
//     separated by pipes
//   - PERCENTAGE, the relative abundance of the taxon
//
// Optionally,
// it can contain the field TAXPATHSN,
// with the names of the taxa in the lineage.
//
// Here is an example file:
//
//	# Taxonomic Profiling Output
//	@SampleID:sample_0
//	@Version:0.9.1
//	@Ranks:superkingdom|phylum|class|order|family|genus|species
//	@@TAXID	RANK	TAXPATH	TAXPATHSN	PERCENTAGE
//	2	superkingdom	2	Bacteria	98.81
//	1224	phylum	2|1224	Bacteria|Proteobacteria	40.50
func Read(r io.Reader) (*Profile, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1
	tsv.LazyQuotes = true

	p := New()
	var s *Sample
	var fields map[string]int
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(row[0])
		if first == "" && len(row) == 1 {
			continue
		}

		if h, ok := strings.CutPrefix(first, "@@"); ok {
			row[0] = h
			fields, err = readFields(row)
			if err != nil {
				return nil, fmt.Errorf("on row %d: %v", ln, err)
			}
			continue
		}
		if h, ok := strings.CutPrefix(first, "@"); ok {
			key, val, _ := strings.Cut(h, ":")
			key = strings.ToLower(strings.TrimSpace(key))
			val = strings.TrimSpace(val)
			switch key {
			case "sampleid":
				if val == "" {
					return nil, fmt.Errorf("on row %d: empty sample ID", ln)
				}
				s = newSample(val)
				p.Add(s)
				fields = nil
			case "ranks":
				if s == nil {
					return nil, fmt.Errorf("on row %d: expecting @SampleID header", ln)
				}
				s.Ranks = parseRanks(val)
			default:
				if s == nil {
					return nil, fmt.Errorf("on row %d: expecting @SampleID header", ln)
				}
				s.Meta[key] = val
			}
			continue
		}

		if s == nil {
			return nil, fmt.Errorf("on row %d: expecting @SampleID header", ln)
		}
		if fields == nil {
			return nil, fmt.Errorf("on row %d: expecting @@TAXID header", ln)
		}
		e, err := readEntry(row, fields)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if e.TaxID == "" {
			continue
		}
		s.Add(e)
	}
	if p.Len() == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}

	return p, nil
}

func readFields(head []string) (map[string]int, error) {
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range headerFields {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}
	return fields, nil
}

func readEntry(row []string, fields map[string]int) (Entry, error) {
	get := func(f string) string {
		i, ok := fields[f]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	e := Entry{
		TaxID: get("taxid"),
		Rank:  taxonomy.NewRank(get("rank")),
	}
	if e.TaxID == "" {
		return e, nil
	}

	f := "taxpath"
	if v := get(f); v != "" {
		e.TaxPath = splitPath(v)
	}
	f = "taxpathsn"
	if v := get(f); v != "" {
		e.TaxPathSN = splitPath(v)
	}

	f = "percentage"
	v, err := strconv.ParseFloat(get(f), 64)
	if err != nil {
		return e, fmt.Errorf("field %q: %v", f, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return e, fmt.Errorf("field %q: invalid percentage %q", f, get(f))
	}
	e.Percentage = v
	return e, nil
}

func splitPath(s string) []string {
	path := strings.Split(s, "|")
	for i, v := range path {
		path[i] = strings.TrimSpace(v)
	}
	return path
}

func parseRanks(s string) []taxonomy.Rank {
	var ranks []taxonomy.Rank
	for _, v := range splitPath(s) {
		ranks = append(ranks, taxonomy.NewRank(v))
	}
	return ranks
}
