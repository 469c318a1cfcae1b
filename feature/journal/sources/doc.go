// Package sources implements the record streams feeding a journal sync.
//
// # Formats
//
//   - Medline: the NLM J_Medline.txt flat file. Blocks of "Key: value" lines
//     separated by dashed lines; JournalTitle, MedAbbr and "ISSN (<Type>)"
//     fields are read.
//   - PMC: the NIH PMC type A CSV (title, NLMTA, print ISSN, online ISSN,
//     start date, end date), with an optional header row.
//
// # Locators
//
// A locator is either a local path or an s3://bucket/object URL read through
// the storage client.
package sources
