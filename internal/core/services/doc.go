// Package services contains the application core: deck ingestion,
// slide retrieval, library management and deck composition. Services
// depend only on the driven ports and are wired to concrete adapters
// at startup.
package services
