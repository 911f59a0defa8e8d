// Package printing contains the Printing bounded context.
// This context is responsible for managing print templates and print jobs
// for business documents such as sales orders, delivery notes, receipts,
// purchase orders, and financial vouchers.
package printing
