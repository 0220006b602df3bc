// Package models contains the GORM persistence models. Each model maps
// one domain entity to its table and owns the conversion in both
// directions; domain types never carry GORM tags.
package models
