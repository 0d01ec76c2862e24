// Package finding provides the shared security finding types used
// across all relgate scanner adapters.
//
// Every external tool reports issues in its own schema and severity
// vocabulary. Adapters in pkg/tools normalize those into the single
// Finding shape defined here, so the orchestrator, report and gate
// layers never see tool-specific structures.
package finding
