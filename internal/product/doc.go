// Package product defines the price-history data model and decodes the
// compact csv table the push service returns for a product.
package product
