// Package gplocal provides the domain model of a small local-products ledger:
// products such as vanilla, clove or pepper, and for each of them the
// purchases, sales and ancillary costs recorded by a collector.
//
// The core functionalities include:
//   - Document: the whole application state, a single JSON document holding
//     products, their ledgers and user settings.
//   - Ledger Model: mutations (add, update, delete rows, add products) that
//     never modify their input and always return a new snapshot.
//   - Aggregation: weight, amount, average price, costs, profit, margin and
//     per-kilogram yield of a product, plus chart series by month, by
//     counterparty and buy versus sell.
//   - Import: the id-union merge of another document into the local one,
//     where the local version always wins.
//   - Store: loading and saving the document through a key-value backend (see
//     package [github.com/etnz/gplocal/kv]), falling back to a seed document
//     when nothing usable is stored.
//
// This package serves as the foundational logic for the `gpl` command-line
// tool.
package gplocal
