// Package stockdata reduces a series of daily stock prices into monthly close
// prices: for every month present in the series, the close of the last
// trading day observed in that month.
//
// The core functionalities include:
//   - Parsing: converting text lines (e.g. "2001-08-31,114.15") into
//     [DailyClose] values, with exact decimal prices. See [ParseLine] and
//     [Layout].
//   - Reading: streaming a whole file or standard input as a lazy sequence of
//     daily closes, see [Reader]. JSON documents are supported through
//     JSONPath selectors, see [DecodeJSON].
//   - Aggregation: selecting the latest record of each month. The selection
//     rule [Pick] is associative and commutative, so sequential
//     ([MonthlyCloses]) and parallel ([ParallelMonthlyCloses],
//     [MonthlyClosesOf]) reductions always agree, whatever the input order,
//     duplicates or partitioning.
//
// The result of an aggregation is an unordered collection. Sorting it for
// presentation is the caller's business, [SortByDate] helps with that.
package stockdata
