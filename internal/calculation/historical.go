package calculation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

// HistoricalDataPoint represents a single year's observation
type HistoricalDataPoint struct {
	Year int             `json:"year"`
	Data decimal.Decimal `json:"data"`
}

// HistoricalDataSet represents one annual series with metadata
type HistoricalDataSet struct {
	Name       string                `json:"name"`
	Source     string                `json:"source"`
	DataPoints []HistoricalDataPoint `json:"data_points"`
	MinYear    int                   `json:"min_year"`
	MaxYear    int                   `json:"max_year"`
	Statistics HistoricalStatistics  `json:"statistics"`
}

// HistoricalStatistics provides a statistical summary of a series
type HistoricalStatistics struct {
	Mean         decimal.Decimal `json:"mean"`
	Median       decimal.Decimal `json:"median"`
	StdDev       decimal.Decimal `json:"std_dev"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Count        int             `json:"count"`
	MissingYears []int           `json:"missing_years"`
}

// lookup returns the value recorded for a year
func (ds *HistoricalDataSet) lookup(year int) (decimal.Decimal, bool) {
	for _, dp := range ds.DataPoints {
		if dp.Year == year {
			return dp.Data, true
		}
	}
	return decimal.Zero, false
}

// HistoricalDataManager loads annual CSV series from a data directory laid out as
//
//	<path>/returns/<asset_class>.csv
//	<path>/inflation/cpi-annual.csv   (optional)
//
// Each file has a header row followed by year,value rows.
type HistoricalDataManager struct {
	Returns   map[domain.AssetClass]*HistoricalDataSet `json:"returns"`
	Inflation *HistoricalDataSet                       `json:"inflation"`
	DataPath  string                                   `json:"data_path"`
	IsLoaded  bool                                     `json:"is_loaded"`
}

// NewHistoricalDataManager creates a new historical data manager
func NewHistoricalDataManager(dataPath string) *HistoricalDataManager {
	return &HistoricalDataManager{
		Returns:  make(map[domain.AssetClass]*HistoricalDataSet),
		DataPath: dataPath,
	}
}

// LoadAllData loads every return series and the inflation series
func (hdm *HistoricalDataManager) LoadAllData() error {
	if hdm.IsLoaded {
		return nil
	}
	if err := hdm.loadReturnData(); err != nil {
		return fmt.Errorf("failed to load return data: %w", err)
	}
	if err := hdm.loadInflationData(); err != nil {
		return fmt.Errorf("failed to load inflation data: %w", err)
	}
	hdm.IsLoaded = true
	return nil
}

func (hdm *HistoricalDataManager) loadReturnData() error {
	files, err := filepath.Glob(filepath.Join(hdm.DataPath, "returns", "*.csv"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no return series under %s", domain.ErrMissingHistoricalData, filepath.Join(hdm.DataPath, "returns"))
	}
	sort.Strings(files)
	for _, file := range files {
		class := domain.AssetClass(strings.TrimSuffix(filepath.Base(file), ".csv"))
		dataset, err := loadCSVData(file, string(class))
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", class, err)
		}
		hdm.Returns[class] = dataset
	}
	return nil
}

func (hdm *HistoricalDataManager) loadInflationData() error {
	filePath := filepath.Join(hdm.DataPath, "inflation", "cpi-annual.csv")
	dataset, err := loadCSVData(filePath, "inflation")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	hdm.Inflation = dataset
	return nil
}

// loadCSVData reads a year,value CSV file. Rows with an unparsable year or value are skipped.
func loadCSVData(filePath, name string) (*HistoricalDataSet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var dataPoints []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}
		dataPoints = append(dataPoints, HistoricalDataPoint{Year: year, Data: value})
	}
	if len(dataPoints) == 0 {
		return nil, fmt.Errorf("no valid data points found in %s", filePath)
	}

	sort.SliceStable(dataPoints, func(i, j int) bool { return dataPoints[i].Year < dataPoints[j].Year })
	return &HistoricalDataSet{
		Name:       name,
		Source:     filePath,
		DataPoints: dataPoints,
		MinYear:    dataPoints[0].Year,
		MaxYear:    dataPoints[len(dataPoints)-1].Year,
		Statistics: calculateStatistics(dataPoints),
	}, nil
}

// calculateStatistics summarizes a year-sorted series
func calculateStatistics(dataPoints []HistoricalDataPoint) HistoricalStatistics {
	if len(dataPoints) == 0 {
		return HistoricalStatistics{}
	}
	values := make([]decimal.Decimal, len(dataPoints))
	var sum decimal.Decimal
	for i, dp := range dataPoints {
		values[i] = dp.Data
		sum = sum.Add(dp.Data)
	}
	count := decimal.NewFromInt(int64(len(values)))
	mean := sum.Div(count)

	var varianceSum decimal.Decimal
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	varianceFloat, _ := varianceSum.Div(count).Float64()
	stdDev := decimal.NewFromFloat(math.Sqrt(varianceFloat))

	sortDecimals(values)
	n := len(values)
	median := values[n/2]
	if n%2 == 0 {
		median = values[n/2-1].Add(values[n/2]).Div(decimal.NewFromInt(2))
	}

	var missingYears []int
	next := dataPoints[0].Year
	for _, dp := range dataPoints {
		for ; next < dp.Year; next++ {
			missingYears = append(missingYears, next)
		}
		next = dp.Year + 1
	}

	return HistoricalStatistics{
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		Min:          values[0],
		Max:          values[n-1],
		Count:        n,
		MissingYears: missingYears,
	}
}

// AssetClasses returns the loaded asset classes in a stable order
func (hdm *HistoricalDataManager) AssetClasses() []domain.AssetClass {
	classes := make([]domain.AssetClass, 0, len(hdm.Returns))
	for class := range hdm.Returns {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// GetReturn returns the historical return for an asset class and year
func (hdm *HistoricalDataManager) GetReturn(class domain.AssetClass, year int) (decimal.Decimal, error) {
	if !hdm.IsLoaded {
		return decimal.Zero, fmt.Errorf("historical data not loaded")
	}
	dataset, ok := hdm.Returns[class]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown asset class: %s", class)
	}
	value, ok := dataset.lookup(year)
	if !ok {
		return decimal.Zero, fmt.Errorf("no data found for %s in year %d", class, year)
	}
	return value, nil
}

// GetInflationRate returns the historical inflation rate for a specific year
func (hdm *HistoricalDataManager) GetInflationRate(year int) (decimal.Decimal, error) {
	if !hdm.IsLoaded || hdm.Inflation == nil {
		return decimal.Zero, fmt.Errorf("inflation data not loaded")
	}
	value, ok := hdm.Inflation.lookup(year)
	if !ok {
		return decimal.Zero, fmt.Errorf("no inflation data found for year %d", year)
	}
	return value, nil
}

// commonYears returns the ascending years present in every loaded series
func (hdm *HistoricalDataManager) commonYears(withInflation bool) []int {
	var sets []*HistoricalDataSet
	for _, class := range hdm.AssetClasses() {
		sets = append(sets, hdm.Returns[class])
	}
	if withInflation && hdm.Inflation != nil {
		sets = append(sets, hdm.Inflation)
	}
	if len(sets) == 0 {
		return nil
	}
	counts := make(map[int]int)
	for _, ds := range sets {
		seen := make(map[int]bool, len(ds.DataPoints))
		for _, dp := range ds.DataPoints {
			if !seen[dp.Year] {
				seen[dp.Year] = true
				counts[dp.Year]++
			}
		}
	}
	var years []int
	for year, count := range counts {
		if count == len(sets) {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// GetAvailableYears returns the first and last year shared by every series
func (hdm *HistoricalDataManager) GetAvailableYears() (int, int, error) {
	if !hdm.IsLoaded {
		return 0, 0, fmt.Errorf("historical data not loaded")
	}
	years := hdm.commonYears(true)
	if len(years) == 0 {
		return 0, 0, fmt.Errorf("%w: series share no common years", domain.ErrMissingHistoricalData)
	}
	return years[0], years[len(years)-1], nil
}

// Table builds the immutable table consumed by the simulator. Every series is cut to the
// years they all share, so index i refers to the same year everywhere.
func (hdm *HistoricalDataManager) Table(basis domain.ReturnBasis) (*domain.HistoricalData, error) {
	if !hdm.IsLoaded {
		return nil, fmt.Errorf("historical data not loaded")
	}
	if basis == "" {
		basis = domain.BasisNominal
	}
	years := hdm.commonYears(true)
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: series share no common years", domain.ErrMissingHistoricalData)
	}

	table := &domain.HistoricalData{
		Years:   years,
		Returns: make(map[domain.AssetClass][]decimal.Decimal, len(hdm.Returns)),
		Basis:   basis,
	}
	for class, dataset := range hdm.Returns {
		series := make([]decimal.Decimal, len(years))
		for i, year := range years {
			series[i], _ = dataset.lookup(year)
		}
		table.Returns[class] = series
	}
	if hdm.Inflation != nil {
		table.Inflation = make([]decimal.Decimal, len(years))
		for i, year := range years {
			table.Inflation[i], _ = hdm.Inflation.lookup(year)
		}
	}
	return table, nil
}

var (
	extremeGain = decimal.NewFromInt(1)
	extremeLoss = decimal.NewFromFloat(-0.5)
)

// ValidateDataQuality reports gaps, outliers and series that do not cover the common range
func (hdm *HistoricalDataManager) ValidateDataQuality() ([]string, error) {
	if !hdm.IsLoaded {
		return nil, fmt.Errorf("historical data not loaded")
	}

	var issues []string
	for _, class := range hdm.AssetClasses() {
		dataset := hdm.Returns[class]
		if len(dataset.Statistics.MissingYears) > 0 {
			issues = append(issues, fmt.Sprintf("Missing years in %s data: %v", class, dataset.Statistics.MissingYears))
		}
		for _, dp := range dataset.DataPoints {
			if dp.Data.GreaterThan(extremeGain) {
				issues = append(issues, fmt.Sprintf("Extreme positive return in %s for year %d: %s", class, dp.Year, dp.Data.String()))
			}
			if dp.Data.LessThan(extremeLoss) {
				issues = append(issues, fmt.Sprintf("Extreme negative return in %s for year %d: %s", class, dp.Year, dp.Data.String()))
			}
		}
	}
	if hdm.Inflation == nil {
		issues = append(issues, "No inflation series loaded; historical inflation and real-basis data are unavailable")
	} else if len(hdm.Inflation.Statistics.MissingYears) > 0 {
		issues = append(issues, fmt.Sprintf("Missing years in inflation data: %v", hdm.Inflation.Statistics.MissingYears))
	}

	common := hdm.commonYears(true)
	for _, class := range hdm.AssetClasses() {
		dataset := hdm.Returns[class]
		if len(dataset.DataPoints) != len(common) {
			issues = append(issues, fmt.Sprintf("%s has %d data points, %d shared with all series", class, len(dataset.DataPoints), len(common)))
		}
	}
	return issues, nil
}
