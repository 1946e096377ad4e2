/*
Package processor orchestrates hint-driven document rewriting.

	+-------------+
	|   Runner    |
	| (Run Scope) |
	+------+------+
	       |
	+------+------+
	|  Processor  |
	| (Document)  |
	+------+------+
	       |
	+------+------+
	|   Engine    |
	| (Lines)     |
	+-------------+

🎯 Purpose:
- Resolves input files or a stdin stream into documents
- Runs each document through the substitution engine
- Emits full content, files, or unified diffs
- Aggregates per-document outcomes into one run result

🔄 Flow:
1. Resolve glob patterns (or take stdin)
2. Split each document into terminator-preserving lines
3. Apply hints via the engine
4. Emit output for changed documents
5. Fold outcomes into status.RunResult, which picks the exit code

⚡ Key Responsibilities:
- Output policy (skip unchanged, diff vs full, output directory)
- Error classification (read, write, internal, recoverable)
- Optional concurrent processing with serialized stdout

📝 Design Philosophy:
The processor never interprets document content beyond lines and never
raises for recoverable per-document conditions; those travel on the
engine Outcome. Only unreadable inputs, unwritable outputs, and
recovered panics escalate, and the run always continues with the
remaining documents.

🔍 Example:

	runner := processor.NewRunner(processor.Options{
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		UI:     ui,
	})
	res := runner.Run(ctx)
	os.Exit(int(res.Code()))
*/
package processor
