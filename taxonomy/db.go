// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Names of the files in an NCBI taxonomy dump.
const (
	NodesFile  = "nodes.dmp"
	NamesFile  = "names.dmp"
	MergedFile = "merged.dmp"
)

// A DB is a taxonomy database
// read from an NCBI taxonomy dump
// (<https://ftp.ncbi.nih.gov/pub/taxonomy/>).
//
// A DB opened from a directory
// is loaded the first time it is used,
// and it is read-only after that,
// so it can be shared by all the figures of a run.
type DB struct {
	dir  string
	once sync.Once
	err  error

	parent map[string]string
	rank   map[string]Rank
	name   map[string]string
	merged map[string]string
}

// Open returns a taxonomy database
// from the dump files in a directory.
// The files are read on first use.
func Open(dir string) *DB {
	return &DB{dir: dir}
}

// ReadDB reads a taxonomy database
// from the content of the nodes,
// names,
// and merged files of an NCBI taxonomy dump.
// The merged file is optional,
// and can be nil.
func ReadDB(nodes, names, merged io.Reader) (*DB, error) {
	db := &DB{}
	db.once.Do(func() {})
	if err := db.read(nodes, names, merged); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) load() error {
	db.once.Do(func() {
		db.err = db.readDir()
	})
	return db.err
}

func (db *DB) readDir() error {
	nodes, err := os.Open(filepath.Join(db.dir, NodesFile))
	if err != nil {
		return err
	}
	defer nodes.Close()

	names, err := os.Open(filepath.Join(db.dir, NamesFile))
	if err != nil {
		return err
	}
	defer names.Close()

	var merged io.Reader
	mf, err := os.Open(filepath.Join(db.dir, MergedFile))
	if err == nil {
		defer mf.Close()
		merged = mf
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := db.read(nodes, names, merged); err != nil {
		return fmt.Errorf("on taxonomy %q: %v", db.dir, err)
	}
	return nil
}

func (db *DB) read(nodes, names, merged io.Reader) error {
	db.parent = make(map[string]string)
	db.rank = make(map[string]Rank)
	db.name = make(map[string]string)
	db.merged = make(map[string]string)

	err := readDump(nodes, 3, func(row []string) error {
		id := row[0]
		db.parent[id] = row[1]
		db.rank[id] = NewRank(row[2])
		return nil
	})
	if err != nil {
		return fmt.Errorf("file %q: %v", NodesFile, err)
	}

	err = readDump(names, 4, func(row []string) error {
		if row[3] != "scientific name" {
			return nil
		}
		db.name[row[0]] = row[1]
		return nil
	})
	if err != nil {
		return fmt.Errorf("file %q: %v", NamesFile, err)
	}

	if merged == nil {
		return nil
	}
	err = readDump(merged, 2, func(row []string) error {
		db.merged[row[0]] = row[1]
		return nil
	})
	if err != nil {
		return fmt.Errorf("file %q: %v", MergedFile, err)
	}
	return nil
}

// readDump reads the rows of a dump file.
// Fields in a dump file are separated by "\t|\t",
// and each line ends with "\t|".
func readDump(r io.Reader, fields int, fn func(row []string) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ln := 0
	for s.Scan() {
		ln++
		line := strings.TrimSuffix(s.Text(), "\t|")
		if line == "" {
			continue
		}
		row := strings.Split(line, "\t|\t")
		if len(row) < fields {
			return fmt.Errorf("on row %d: got %d fields, want %d", ln, len(row), fields)
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return s.Err()
}

// Translate returns the current ID
// of a merged taxon.
// Other IDs are returned unchanged.
func (db *DB) Translate(id string) string {
	if err := db.load(); err != nil {
		return id
	}
	if m, ok := db.merged[id]; ok {
		return m
	}
	return id
}

// Lineage returns the lineage of a taxon,
// from the root to the taxon.
// IDs of merged taxa are translated
// to their current ID.
func (db *DB) Lineage(id string) ([]Node, error) {
	if err := db.load(); err != nil {
		return nil, err
	}

	if m, ok := db.merged[id]; ok {
		id = m
	}
	if _, ok := db.parent[id]; !ok {
		return nil, fmt.Errorf("taxon %q: not found in taxonomy", id)
	}

	var ln []Node
	for {
		ln = append(ln, Node{
			TaxID: id,
			Rank:  db.rank[id],
			Name:  db.name[id],
		})
		p, ok := db.parent[id]
		if !ok {
			return nil, fmt.Errorf("taxon %q: parent %q not found in taxonomy", id, p)
		}
		if p == id {
			break
		}
		if len(ln) > len(db.parent) {
			return nil, fmt.Errorf("taxon %q: cycle in lineage", ln[0].TaxID)
		}
		id = p
	}
	slices.Reverse(ln)
	return ln, nil
}

// Topology returns a tree of the given taxa,
// truncated at the rank limit.
func (db *DB) Topology(ids []string, limit Rank) (*Tree, error) {
	if len(ids) == 0 {
		return nil, ErrNoTaxa
	}
	if !limit.IsRanked() {
		return nil, fmt.Errorf("unknown taxonomic rank %q", limit)
	}

	req := make(map[string]bool, len(ids))
	lineages := make([][]Node, 0, len(ids))
	for _, id := range ids {
		ln, err := db.Lineage(id)
		if err != nil {
			return nil, err
		}
		id = ln[len(ln)-1].TaxID
		if req[id] {
			continue
		}
		req[id] = true
		lineages = append(lineages, ln)
	}
	return build(lineages, req, limit)
}
