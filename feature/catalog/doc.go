// Package catalog exposes read access to the library catalog (books, copies,
// branches, return box units) and stores book cover images in object storage.
package catalog
