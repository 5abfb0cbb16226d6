package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"kids-screentime/internal/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Age,Avg_Daily_Screen_Time,Primary_Device,Gender\n10,2.5,Mobile,Male\n12,3.5,Tablet,Female\n"

const surveyCSV = `Age,Gender,Avg_Daily_Screen_Time,Primary_Device,Exceeded_Recommended_Limit,Educational_to_Recreational_Ratio
8,Male,3.1,Smartphone,True,0.4
8,Female,2.9,TV,True,0.5
9,Female,4.0,Smartphone,True,0.3
10,Male,1.5,Laptop,False,0.6
10,Male,2.5,Smartphone,True,0.45
10,Female,3.5,Tablet,True,0.35
12,Female,5.0,Smartphone,True,0.2
`

func table(t *testing.T, csv string) *models.Table {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(csv))
	require.NoError(t, df.Err)
	return models.NewTable(df, "test")
}

func TestRequireColumns_ReportsFirstMissing(t *testing.T) {
	tbl := table(t, "Gender,Other\nMale,1\n")

	err := RequireColumns(tbl, ColumnAge, ColumnScreenTime)
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ColumnAge, missing.Column)
	assert.Equal(t, "Missing column: Age", err.Error())

	tbl = table(t, "Age,Other\n10,1\n")
	err = RequireColumns(tbl, ColumnAge, ColumnScreenTime)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ColumnScreenTime, missing.Column)

	assert.NoError(t, RequireColumns(tbl, ColumnAge))
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(table(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Records)
	assert.InDelta(t, 11.0, s.MeanAge, 1e-9)
	assert.InDelta(t, 3.0, s.MeanDailyTime, 1e-9)
}

func TestSummarize_SkipsMissingCells(t *testing.T) {
	s, err := Summarize(table(t, "Age,Avg_Daily_Screen_Time\n10,2\n14,NaN\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Records)
	assert.InDelta(t, 12.0, s.MeanAge, 1e-9)
	assert.InDelta(t, 2.0, s.MeanDailyTime, 1e-9)
}

func TestSummarize_NonNumeric(t *testing.T) {
	_, err := Summarize(table(t, "Age,Avg_Daily_Screen_Time\nten,2\neleven,3\n"))

	var nonNumeric *NonNumericColumnError
	require.True(t, errors.As(err, &nonNumeric))
	assert.Equal(t, ColumnAge, nonNumeric.Column)
}

func TestValueCounts_SumToRowCount(t *testing.T) {
	tbl := table(t, surveyCSV)

	counts, err := ValueCounts(tbl, ColumnDevice)
	require.NoError(t, err)

	assert.Equal(t, tbl.Len(), Total(counts))
	assert.Equal(t, []Count{
		{Category: "Smartphone", Count: 4},
		{Category: "Laptop", Count: 1},
		{Category: "TV", Count: 1},
		{Category: "Tablet", Count: 1},
	}, counts)

	seen := map[string]bool{}
	for _, c := range counts {
		assert.False(t, seen[c.Category], "duplicate category %s", c.Category)
		seen[c.Category] = true
	}
}

func TestValueCounts_Gender(t *testing.T) {
	counts, err := ValueCounts(table(t, surveyCSV), ColumnGender)
	require.NoError(t, err)

	assert.Equal(t, []Count{{"Female", 4}, {"Male", 3}}, counts)
}

func TestValueCounts_MissingColumn(t *testing.T) {
	_, err := ValueCounts(table(t, sampleCSV), "Region")
	assert.EqualError(t, err, "Missing column: Region")
}

func TestMeanBy_OnePointPerAge(t *testing.T) {
	groups, err := MeanBy(table(t, surveyCSV), ColumnAge, ColumnScreenTime)
	require.NoError(t, err)

	require.Len(t, groups, 4)
	wantKeys := []float64{8, 9, 10, 12}
	wantMeans := []float64{3.0, 4.0, 2.5, 5.0}
	wantN := []int{2, 1, 3, 1}
	for i, g := range groups {
		assert.Equal(t, wantKeys[i], g.Key)
		assert.InDelta(t, wantMeans[i], g.Mean, 1e-9)
		assert.Equal(t, wantN[i], g.N)
	}
}

func TestMeanBy_MissingColumn(t *testing.T) {
	_, err := MeanBy(table(t, "Age\n1\n"), ColumnAge, ColumnScreenTime)
	assert.EqualError(t, err, "Missing column: Avg_Daily_Screen_Time")
}

func TestCorrelate_NoNumericColumns(t *testing.T) {
	_, err := Correlate(table(t, "Gender,Primary_Device\nMale,TV\nFemale,Laptop\n"))
	assert.ErrorIs(t, err, ErrNoNumericColumns)
}

func TestCorrelate_SymmetricUnitDiagonal(t *testing.T) {
	m, err := Correlate(table(t, surveyCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Age", "Avg_Daily_Screen_Time", "Educational_to_Recreational_Ratio"}, m.Columns)
	k := m.Size()
	for i := 0; i < k; i++ {
		assert.Equal(t, 1.0, m.At(i, i))
		for j := 0; j < k; j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.LessOrEqual(t, math.Abs(m.At(i, j)), 1.0+1e-12)
		}
	}
	// more screen time, less educational share
	assert.Less(t, m.At(1, 2), -0.9)
}

func TestCorrelate_PerfectLinear(t *testing.T) {
	m, err := Correlate(table(t, "x,y,z\n1,2,9\n2,4,7\n3,6,5\n"))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, m.At(0, 1), 1e-9)
	assert.InDelta(t, -1.0, m.At(0, 2), 1e-9)
}

func TestCorrelate_ConstantColumnIsNaN(t *testing.T) {
	m, err := Correlate(table(t, "x,c\n1,5\n2,5\n3,5\n"))
	require.NoError(t, err)

	assert.True(t, math.IsNaN(m.At(0, 1)))
	assert.Equal(t, 1.0, m.At(1, 1))
}
