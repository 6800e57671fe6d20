package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/statarb-lab/pairtrade/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CSVTestSuite struct {
	suite.Suite
}

func TestCSVSuite(t *testing.T) {
	suite.Run(t, new(CSVTestSuite))
}

func (suite *CSVTestSuite) writeFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "prices.csv")
	err := os.WriteFile(path, []byte(content), 0644)
	suite.Require().NoError(err)

	return path
}

func (suite *CSVTestSuite) TestLoad() {
	path := suite.writeFile(`date,AAA,BBB
2024-01-01,100.5,200.25
2024-01-02,101,201
2024-01-03,102,202
`)

	table, err := LoadCSV(path)
	suite.Require().NoError(err)

	suite.Equal(3, table.Len())
	suite.Equal([]string{"AAA", "BBB"}, table.Symbols())

	value, err := table.At(0, "AAA")
	suite.Require().NoError(err)
	suite.Equal(100.5, value)
}

func (suite *CSVTestSuite) TestEmptyCellsAreGaps() {
	path := suite.writeFile(`date,AAA,BBB
2024-01-01,,200
2024-01-02,101,
2024-01-03,102,202
`)

	table, err := LoadCSV(path)
	suite.Require().NoError(err)

	column, err := table.Column("AAA")
	suite.Require().NoError(err)
	suite.Equal([]float64{101, 101, 102}, column)

	column, err = table.Column("BBB")
	suite.Require().NoError(err)
	suite.Equal([]float64{200, 200, 202}, column)
}

func (suite *CSVTestSuite) TestMalformedFiles() {
	_, err := LoadCSV(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Require().Error(err)

	path := suite.writeFile("date,AAA,BBB\n")
	_, err = LoadCSV(path)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyPriceTable))

	path = suite.writeFile(`date,AAA,BBB
2024-01-01,1
`)
	_, err = LoadCSV(path)
	suite.Require().Error(err)

	path = suite.writeFile(`date,AAA,BBB
not-a-date,1,2
`)
	_, err = LoadCSV(path)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimeIndex))

	path = suite.writeFile(`date,AAA,BBB
2024-01-01,abc,2
`)
	_, err = LoadCSV(path)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *CSVTestSuite) TestHeaderValidation() {
	path := suite.writeFile(`time,AAA,BBB
2024-01-01,1,2
`)
	_, err := LoadCSV(path)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingColumn))

	path = suite.writeFile(`date,AAA
2024-01-01,1
`)
	_, err = LoadCSV(path)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingColumn))
}
