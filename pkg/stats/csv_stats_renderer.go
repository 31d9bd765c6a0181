package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/klokku/budgettracker/pkg/entry"
	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderMonthly(year int, buckets []MonthlyBucket) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderMonthly writes one line per month followed by a yearly total line.
func (t *CsvStatsRendererImpl) RenderMonthly(year int, buckets []MonthlyBucket) (string, error) {
	header := make([]string, 0, len(entry.AllTypes)+2)
	header = append(header, "Mois")
	for _, entryType := range entry.AllTypes {
		header = append(header, entryType.Label())
	}
	header = append(header, "Solde")

	yearTotals := newTypeTotals()
	data := make([][]string, 0, len(buckets)+2)
	data = append(data, header)
	for _, bucket := range buckets {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(year)+"-"+twoDigits(int(bucket.Month)))
		for _, entryType := range entry.AllTypes {
			row = append(row, bucket.Totals[entryType].StringFixed(2))
			yearTotals[entryType] = yearTotals[entryType].Add(bucket.Totals[entryType])
		}
		row = append(row, bucket.Solde.StringFixed(2))
		data = append(data, row)
	}
	data = append(data, totalRow(yearTotals))

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func totalRow(totals TypeTotals) []string {
	row := []string{"Total"}
	for _, entryType := range entry.AllTypes {
		row = append(row, totals[entryType].StringFixed(2))
	}
	return append(row, totals.Solde().StringFixed(2))
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
