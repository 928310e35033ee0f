// Package mongostore implements the account and project stores on MongoDB.
//
// Documents use the string uuid assigned by the service as _id. Project
// predicates are rendered as an $and of per-constraint filters, so both
// budget bounds always apply together.
package mongostore
