// Package services implements the core business logic of the doclens engine:
// feature extraction, priority and quality scoring, confidence calibration,
// type/domain classification and knowledge-extraction orchestration.
//
// Services implement the driving port interfaces and depend only on domain
// value objects and driven ports, never on concrete adapters.
package services
