// Package domain contains the core value objects of the doclens engine:
// classified documents, feature maps, knowledge-graph records and the closed
// document type / technical domain enumerations.
//
// Everything in this package is a plain value object with no behaviour beyond
// validation and presentation helpers. Business logic lives in
// internal/core/services; persistence lives behind internal/core/ports.
package domain
