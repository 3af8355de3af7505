// Package reagent implements a bounded ReAct agent loop in Go.
//
// The loop repeatedly sends an evolving transcript to a text-completion model,
// parses the continuation into a tool invocation or a final answer, executes
// the requested tool, and feeds the observation back into the transcript.
// Unknown tools, failed tool calls, and unparsable output are recoverable:
// they become observation text the model can self-correct from, bounded by a
// hard iteration limit.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/tmc/langchaingo/llms/openai"
//	    "github.com/yadavanujkumar/reagent"
//	    "github.com/yadavanujkumar/reagent/models"
//	    "github.com/yadavanujkumar/reagent/tools"
//	)
//
//	func main() {
//	    llm, _ := openai.New()
//
//	    registry := reagent.NewRegistry().
//	        MustRegister(tools.NewCalculator()).
//	        MustRegister(tools.NewCurrentTime(reagent.NewDefaultTimeProvider()))
//
//	    agent := reagent.NewAgent(models.NewLCG(llm).WithReActStop()).
//	        WithRegistry(registry).
//	        WithMaxIterations(5)
//
//	    result := agent.Run(context.Background(), "What is 15 * 8?")
//	    if result.Failed() {
//	        fmt.Println("run failed:", result.Err)
//	        return
//	    }
//	    fmt.Println(result.Answer)
//	}
//
// # Components
//
//   - [Registry] maps tool names to [Tool] implementations. Registration
//     happens before a run; the registry is read-only while runs execute, so
//     one registry can be shared across concurrent runs.
//   - [Transcript] is the append-only record of one run's steps. Each run
//     owns its own transcript.
//   - [PromptBuilder] renders the tool catalogue, the instructional template,
//     the question, and the transcript into the prompt sent to the model.
//   - [ParseDecision] turns a raw model continuation into a [Decision]:
//     invoke a tool, finish with an answer, or malformed.
//   - [Agent] orchestrates the above against a [CompletionClient] until it
//     produces a final answer or a terminal failure.
//
// # Observability
//
// Every run records trace events and aggregate stats on its [RunContext],
// available from [RunResult.Run]. Lifecycle hooks (see the hooks subpackage)
// receive typed events around iterations, model calls, and tool calls.
package reagent
