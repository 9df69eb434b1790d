// Package docpress is a document-publishing engine: it parses marked-up
// text into a structured document tree, applies an ordered sequence of
// tree-rewriting transforms, and renders the result through a pluggable
// writer into one or more output parts.
//
// # Quick Start
//
// Create a publisher and publish a source:
//
//	pub := docpress.NewPublisher()
//	err := pub.Publish(ctx, &docpress.Source{Path: "README.md"}, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Pipeline
//
// Publishing follows these stages:
//
//  1. Settings resolution (catalogue defaults, then configuration files in
//     precedence order, then explicit overrides)
//  2. Reading: the source is parsed into a document tree (markdown via
//     Goldmark, with YAML frontmatter extracted into document attributes)
//  3. Transforms: the scheduler orders and runs tree rewrites by
//     (priority, creation order); failures become diagnostic nodes or, at
//     or above the halt level, abort the run
//  4. Writing: a writer traverses the tree and accumulates named output
//     parts, emitted together or individually
//
// # Settings
//
// Options are declared in a process-wide catalogue (see Registry) and
// resolved once per run from, in rising precedence: defaults, the system
// file /etc/docpress.conf, the user file, ./docpress.conf, .docpress.yaml,
// and a document-local <name>.conf next to the source. Configuration files
// hold one "name: value" pair per line; "#" starts a comment and a
// "config: <path>" line includes another file depth-first.
//
// # Diagnostics
//
// Transform failures carry a severity on a 0-10 scale. Failures at or above
// the report-level setting are written to the reporter destination as
// "<LABEL> [line <N>] <message>"; failures at or above halt-level abort the
// run. Everything below the halt level is recorded in a "Processing
// Messages" section appended to the document itself.
//
// # Custom readers, writers, and transforms
//
// Readers implement Read plus a Transforms list that the scheduler always
// runs. Writers implement per-node Visit/Depart hooks and declare named
// parts; see HTMLWriter and TextWriter. Transforms embed Base for their
// priority and creation order and implement Apply against a Run.
package docpress
