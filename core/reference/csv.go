package reference

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// The built-in tables use the column layout of the CDC and WHO distribution
// files (Sex,Agemos,L,M,S and Sex,Length,L,M,S). WHO tables cover birth to 24
// months and weight-for-length 45 to 110 cm; CDC tables cover 24 to 240 months
// at yearly knots.
//
//go:embed data/*.csv
var builtinFS embed.FS

// Column names accepted for the x axis, matching the CDC and WHO distribution files.
var xColumns = []string{"agemos", "age", "month", "length", "height", "x"}

// ReadCSV reads a CDC or WHO style LMS file. The file must have a header row with
// Sex, an x column (Agemos, Length, ...), L, M and S. Sex is 1 or male for boys
// and 2 or female for girls. Rows with a blank sex column are skipped.
func ReadCSV(r io.Reader) (map[schema.Gender]schema.LMSTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	col := func(names ...string) (int, error) {
		for _, n := range names {
			if i, ok := idx[n]; ok {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: missing column %s", schema.ErrInvalidInput, names[0])
	}
	sexCol, err := col("sex", "gender")
	if err != nil {
		return nil, err
	}
	xCol, err := col(xColumns...)
	if err != nil {
		return nil, err
	}
	lCol, err := col("l")
	if err != nil {
		return nil, err
	}
	mCol, err := col("m")
	if err != nil {
		return nil, err
	}
	sCol, err := col("s")
	if err != nil {
		return nil, err
	}

	tables := make(map[schema.Gender]schema.LMSTable)
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) <= max(sexCol, xCol, lCol, mCol, sCol) || strings.TrimSpace(rec[sexCol]) == "" {
			continue
		}
		gender, err := parseSex(rec[sexCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var vals [4]float64
		for i, c := range []int{xCol, lCol, mCol, sCol} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, schema.ErrInvalidInput, err)
			}
			vals[i] = v
		}
		tables[gender] = append(tables[gender], schema.LMSPoint{X: vals[0], L: vals[1], M: vals[2], S: vals[3]})
	}
	return tables, nil
}

// LoadDir reads every <metric>_<standard>.csv file in dir, e.g. height_cdc.csv or
// weight-for-length_who.csv. Files that do not follow the naming pattern are ignored.
func LoadDir(dir string) (map[Key]schema.LMSTable, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS is LoadDir over the directory dir of a file system.
func LoadFS(fsys fs.FS, dir string) (map[Key]schema.LMSTable, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference dir: %w", err)
	}
	out := make(map[Key]schema.LMSTable)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".csv") {
			continue
		}
		metric, standard, ok := ParseTableFileName(e.Name())
		if !ok {
			continue
		}
		tables, err := readCSVFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		for gender, t := range tables {
			out[Key{Metric: metric, Standard: standard, Gender: gender}] = t
		}
	}
	return out, nil
}

// ParseTableFileName splits a file name like bmi_cdc.csv into its metric and standard.
func ParseTableFileName(name string) (schema.Metric, schema.GrowthStandard, bool) {
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	i := strings.LastIndex(base, "_")
	if i <= 0 {
		return "", "", false
	}
	metric := schema.Metric(base[:i])
	standard := schema.GrowthStandard(strings.ToUpper(base[i+1:]))
	if _, ok := schema.ValidMetrics[metric]; !ok {
		return "", "", false
	}
	if _, ok := schema.ValidStandards[standard]; !ok {
		return "", "", false
	}
	return metric, standard, true
}

func readCSVFile(fsys fs.FS, name string) (map[schema.Gender]schema.LMSTable, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f)
}

func parseSex(s string) (schema.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "m", "male", "boy", "boys":
		return schema.Male, nil
	case "2", "f", "female", "girl", "girls":
		return schema.Female, nil
	}
	return "", fmt.Errorf("%w: unknown sex '%s'", schema.ErrInvalidInput, s)
}
