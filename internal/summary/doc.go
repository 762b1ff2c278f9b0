// Package summary parses snakemake's --detailed-summary output and
// normalizes each row into source/target descriptor pairs. One row with k
// comma-separated inputs yields k pairs sharing the same target descriptor.
// Authoritative metadata (rule, version, status, date, plan) lives only on
// the target side; source descriptors are intentionally blank.
package summary
