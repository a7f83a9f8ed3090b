package models

// Product is the persisted catalog record. Barcode doubles as the external
// product identifier and the primary key; a record is written exactly once
// per successful extraction and never updated by this pipeline.
type Product struct {
	Barcode         int64
	ProductName     string
	Category        string
	CountryOfOrigin string
	Link            string
	Thumbnail       string
	Price           int64
	Status          bool
	Description     string
	Remarks         string
}
