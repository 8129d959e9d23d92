// Package reference holds the WHO and CDC LMS reference tables and resolves
// which table applies to a measurement.
package reference

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// AdultAgeMonths is the age of the adult reference point used for parental heights.
const AdultAgeMonths = 240.0

// Key identifies a single reference table.
type Key struct {
	Metric   schema.Metric
	Standard schema.GrowthStandard
	Gender   schema.Gender
}

// String returns the key in the file naming form, e.g. height_cdc_male.
func (k Key) String() string {
	return fmt.Sprintf("%s_%s_%s", k.Metric, lowerStandard(k.Standard), k.Gender)
}

// Row is one flattened table entry, used by exporters and loaders.
type Row struct {
	Key
	schema.LMSPoint
}

// Store is an immutable set of reference tables. It is safe for concurrent use.
type Store struct {
	tables map[Key]schema.LMSTable
}

var (
	builtinOnce  sync.Once
	builtinStore *Store
)

// Builtin returns the store compiled into the binary. It panics if the
// embedded tables are malformed.
func Builtin() *Store {
	builtinOnce.Do(func() {
		tables, err := LoadFS(builtinFS, "data")
		if err != nil {
			panic(fmt.Sprintf("reference: embedded tables: %v", err))
		}
		builtinStore, err = NewStore(tables)
		if err != nil {
			panic(fmt.Sprintf("reference: embedded tables: %v", err))
		}
	})
	return builtinStore
}

// NewStore validates the given tables and returns a store holding sorted copies of them.
func NewStore(tables map[Key]schema.LMSTable) (*Store, error) {
	s := &Store{tables: make(map[Key]schema.LMSTable, len(tables))}
	for k, t := range tables {
		sorted, err := normalize(t)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", k, err)
		}
		s.tables[k] = sorted
	}
	return s, nil
}

// WithOverrides returns a new store where the given tables replace or extend this one.
// The receiver is left untouched.
func (s *Store) WithOverrides(overrides map[Key]schema.LMSTable) (*Store, error) {
	merged := maps.Clone(s.tables)
	extra, err := NewStore(overrides)
	if err != nil {
		return nil, err
	}
	maps.Copy(merged, extra.tables)
	return &Store{tables: merged}, nil
}

// Table returns the reference table for a key.
func (s *Store) Table(metric schema.Metric, standard schema.GrowthStandard, gender schema.Gender) (schema.LMSTable, error) {
	t, ok := s.tables[Key{metric, standard, gender}]
	if !ok || len(t) == 0 {
		return nil, fmt.Errorf("%w: %s for %s children using %s", schema.ErrNoReferenceTable, metric, gender, standard)
	}
	return t, nil
}

// StandardFor returns the growth standard that applies to a metric at x.
// Weight-for-length is only defined by WHO.
func StandardFor(metric schema.Metric, x float64) schema.GrowthStandard {
	if metric == schema.WeightForLengthMetric {
		return schema.WHO
	}
	return algo.SelectStandard(x)
}

// Lookup selects the applicable table for the metric and interpolates it at x.
func (s *Store) Lookup(metric schema.Metric, gender schema.Gender, x float64) (schema.LMSPoint, schema.GrowthStandard, error) {
	standard := StandardFor(metric, x)
	p, err := s.LookupStandard(metric, standard, gender, x)
	return p, standard, err
}

// LookupStandard interpolates a specific table at x.
func (s *Store) LookupStandard(metric schema.Metric, standard schema.GrowthStandard, gender schema.Gender, x float64) (schema.LMSPoint, error) {
	t, err := s.Table(metric, standard, gender)
	if err != nil {
		return schema.LMSPoint{}, err
	}
	return algo.Interpolate(x, t)
}

// Keys returns every key in the store in a stable order.
func (s *Store) Keys() []Key {
	keys := slices.Collect(maps.Keys(s.tables))
	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(
			cmp.Compare(a.Metric, b.Metric),
			cmp.Compare(a.Standard, b.Standard),
			cmp.Compare(a.Gender, b.Gender),
		)
	})
	return keys
}

// Rows flattens the store, ordered by key and then by X.
func (s *Store) Rows() []Row {
	var rows []Row
	for _, k := range s.Keys() {
		for _, p := range s.tables[k] {
			rows = append(rows, Row{Key: k, LMSPoint: p})
		}
	}
	return rows
}

// FromRows groups flattened rows back into tables.
func FromRows(rows []Row) (map[Key]schema.LMSTable, error) {
	tables := make(map[Key]schema.LMSTable)
	for _, r := range rows {
		if _, ok := schema.ValidMetrics[r.Metric]; !ok {
			return nil, fmt.Errorf("%w: unknown metric '%s'", schema.ErrInvalidInput, r.Metric)
		}
		if _, ok := schema.ValidStandards[r.Standard]; !ok {
			return nil, fmt.Errorf("%w: unknown standard '%s'", schema.ErrInvalidInput, r.Standard)
		}
		if _, ok := schema.ValidGenders[r.Gender]; !ok {
			return nil, fmt.Errorf("%w: unknown gender '%s'", schema.ErrInvalidInput, r.Gender)
		}
		tables[r.Key] = append(tables[r.Key], r.LMSPoint)
	}
	return tables, nil
}

// normalize checks the table invariants and returns a sorted copy.
func normalize(t schema.LMSTable) (schema.LMSTable, error) {
	if len(t) == 0 {
		return nil, schema.ErrEmptyTable
	}
	sorted := slices.SortedFunc(slices.Values(t), func(a, b schema.LMSPoint) int {
		return cmp.Compare(a.X, b.X)
	})
	for i, p := range sorted {
		if p.M <= 0 || p.S <= 0 {
			return nil, fmt.Errorf("%w: non-positive M or S at x=%v", schema.ErrInvalidInput, p.X)
		}
		if p.X < 0 {
			return nil, fmt.Errorf("%w: negative x=%v", schema.ErrInvalidInput, p.X)
		}
		if i > 0 && sorted[i-1].X == p.X {
			return nil, fmt.Errorf("%w: duplicate x=%v", schema.ErrInvalidInput, p.X)
		}
	}
	return sorted, nil
}

func lowerStandard(s schema.GrowthStandard) string {
	switch s {
	case schema.WHO:
		return "who"
	case schema.CDC:
		return "cdc"
	}
	return string(s)
}
