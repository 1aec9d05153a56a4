// Package exporter writes the published report files for the sea ice
// index.
//
// Four report formats are produced:
//
// DailyExtentCSV: the human-readable daily extent CSV with fixed-width
// columns and a units description row.
//
// ClimatologyCSV: day-of-year climatology statistics (mean, standard
// deviation, quantiles) with a reference-years header line.
//
// MonthlyByYearXLSX: one workbook with a year-by-month grid of extent
// and area per hemisphere, including a day-weighted annual average that
// is highlighted when months are missing.
//
// RatesOfChangeXLSX: one workbook with a year-by-month grid per change
// statistic, with the climatological averages appended and cells
// colored by sign.
package exporter
