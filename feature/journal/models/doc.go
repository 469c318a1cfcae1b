// Package models defines the GORM model of the journals table and its
// conversion to and from the sync engine types.
package models
