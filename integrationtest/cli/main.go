// Package main provides an interactive CLI for exercising the library
// against a real OpenAI backend: the tool-calling agent, the simple chain,
// the memory-backed chat, and document QA.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/yadavanujkumar/reagent"
	"github.com/yadavanujkumar/reagent/chain"
	"github.com/yadavanujkumar/reagent/conversation"
	"github.com/yadavanujkumar/reagent/hooks"
	"github.com/yadavanujkumar/reagent/models"
	"github.com/yadavanujkumar/reagent/retrieval"
	"github.com/yadavanujkumar/reagent/tools"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

type menuItem struct {
	name        string
	description string
	run         func(ctx context.Context, rl *readline.Instance, llm *openai.LLM) error
}

func run() error {
	if os.Getenv("OPENAI_API_KEY") == "" {
		fmt.Fprintf(os.Stderr,
			"%sWARNING: OPENAI_API_KEY environment variable is not set!%s\n",
			colorYellow, colorReset)
		fmt.Fprintf(os.Stderr,
			"%sAll demos will fail until you set it.%s\n\n",
			colorYellow, colorReset)
	}

	llm, err := openai.New()
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	rl, err := readline.New(
		colorCyan + "Enter selection (or 'q' to quit): " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	menu := []menuItem{
		{
			name:        "Agent with tools",
			description: "Ask questions answered via Calculator, CurrentTime, WordCounter, TextReverser",
			run:         runAgent,
		},
		{
			name:        "Simple chain",
			description: "One-shot explanations through a prompt template",
			run:         runChain,
		},
		{
			name:        "Chat with memory",
			description: "Multi-turn conversation that remembers earlier exchanges",
			run:         runChat,
		},
		{
			name:        "Document QA",
			description: "Questions answered from the bundled corpus via similarity search",
			run:         runQA,
		},
	}

	ctx := context.Background()
	for {
		fmt.Println()
		fmt.Printf("%s%sDemos%s\n", colorBold, colorCyan, colorReset)
		for i, item := range menu {
			fmt.Printf("  %s%d%s. %s %s- %s%s\n",
				colorGreen, i+1, colorReset, item.name,
				colorDim, item.description, colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			// Ctrl-C / Ctrl-D exit the menu.
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		choice := strings.TrimSpace(line)
		if choice == "q" || choice == "quit" {
			return nil
		}

		idx := -1
		for i := range menu {
			if choice == fmt.Sprintf("%d", i+1) {
				idx = i
				break
			}
		}
		if idx < 0 {
			fmt.Printf("%sUnknown selection %q%s\n", colorYellow, choice, colorReset)
			continue
		}

		if err := menu[idx].run(ctx, rl, llm); err != nil {
			fmt.Fprintf(os.Stderr, "%s%v%s\n", colorRed, err, colorReset)
		}
	}
}

// consoleHooks prints model and tool activity as the run progresses.
type consoleHooks struct{}

func (consoleHooks) OnAfterModelCall(_ *reagent.RunContext, event reagent.AfterModelCallEvent) {
	if event.Error != nil {
		fmt.Printf("%smodel error: %v%s\n", colorRed, event.Error, colorReset)
		return
	}
	fmt.Printf("%s%s%s\n", colorDim, strings.TrimSpace(event.Response), colorReset)
}

func (consoleHooks) OnAfterToolCall(_ *reagent.RunContext, event reagent.AfterToolCallEvent) {
	if event.Error != nil {
		fmt.Printf("%s[%s] error: %v%s\n",
			colorYellow, event.ToolName, event.Error, colorReset)
		return
	}
	fmt.Printf("%s[%s] %s%s\n",
		colorGreen, event.ToolName, event.Output, colorReset)
}

func runAgent(ctx context.Context, rl *readline.Instance, llm *openai.LLM) error {
	registry := reagent.NewRegistry().
		MustRegister(tools.NewCurrentTime(reagent.NewDefaultTimeProvider())).
		MustRegister(tools.NewCalculator()).
		MustRegister(tools.NewWordCounter()).
		MustRegister(tools.NewTextReverser())

	agent := reagent.NewAgent(models.NewLCG(llm).WithReActStop()).
		WithRegistry(registry).
		WithMaxIterations(5).
		WithHooks(hooks.NewRegistry().Register(consoleHooks{}))

	return promptLoop(rl, "agent> ", func(question string) {
		result := agent.Run(ctx, question)
		if result.Failed() {
			fmt.Printf("%sRun failed (%s): %v%s\n",
				colorRed, result.Reason, result.Err, colorReset)
			return
		}

		stats := result.Run.Stats()
		fmt.Printf("\n%s%sAnswer:%s %s\n", colorBold, colorGreen, colorReset, result.Answer)
		fmt.Printf("%s(%d iterations, %d model calls, %d tool calls)%s\n",
			colorDim, stats.Iterations, stats.ModelCalls, stats.ToolCalls, colorReset)
	})
}

func runChain(ctx context.Context, rl *readline.Instance, llm *openai.LLM) error {
	explainer := chain.NewExplainer(llm)

	return promptLoop(rl, "chain> ", func(question string) {
		answer, err := explainer.Explain(ctx, question)
		if err != nil {
			fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
			return
		}
		fmt.Printf("%s%sAnswer:%s %s\n",
			colorBold, colorGreen, colorReset, strings.TrimSpace(answer))
	})
}

func runChat(ctx context.Context, rl *readline.Instance, llm *openai.LLM) error {
	chat := conversation.NewChat(llm)
	fmt.Printf("%sCommands: /history shows the conversation, /clear forgets it%s\n",
		colorDim, colorReset)

	return promptLoop(rl, "chat> ", func(input string) {
		switch input {
		case "/clear":
			if err := chat.Clear(ctx); err != nil {
				fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
				return
			}
			fmt.Printf("%sMemory cleared.%s\n", colorDim, colorReset)
			return

		case "/history":
			history, err := chat.History(ctx)
			if err != nil {
				fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
				return
			}
			for _, message := range history {
				fmt.Printf("%s%s:%s %s\n",
					colorCyan, message.GetType(), colorReset, message.GetContent())
			}
			return
		}

		reply, err := chat.Predict(ctx, input)
		if err != nil {
			fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
			return
		}
		fmt.Printf("%s%sAssistant:%s %s\n", colorBold, colorGreen, colorReset, reply)
	})
}

func runQA(ctx context.Context, rl *readline.Instance, llm *openai.LLM) error {
	docs, err := retrieval.LoadCorpusFile("corpus.yaml")
	if err != nil {
		return err
	}

	chunks, err := retrieval.SplitCorpus(docs,
		retrieval.DefaultChunkSize, retrieval.DefaultChunkOverlap)
	if err != nil {
		return err
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	store := retrieval.NewInMemory(embedder)
	if _, err := store.AddDocuments(ctx, chunks); err != nil {
		return fmt.Errorf("failed to index corpus: %w", err)
	}
	fmt.Printf("%sIndexed %d chunks from %d documents.%s\n",
		colorDim, len(chunks), len(docs), colorReset)

	qa := retrieval.NewQA(llm, store)

	return promptLoop(rl, "qa> ", func(question string) {
		answer, err := qa.Ask(ctx, question)
		if err != nil {
			fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
			return
		}

		fmt.Printf("%s%sAnswer:%s %s\n",
			colorBold, colorGreen, colorReset, strings.TrimSpace(answer.Text))
		for _, source := range answer.Sources {
			fmt.Printf("%s  source: %v%s\n",
				colorDim, source.Metadata["topic"], colorReset)
		}
	})
}

// promptLoop reads lines until the user enters an empty line, Ctrl-C, or
// Ctrl-D, passing each non-empty line to handle.
func promptLoop(rl *readline.Instance, prompt string, handle func(string)) error {
	previous := rl.Config.Prompt
	rl.SetPrompt(colorCyan + prompt + colorReset)
	defer rl.SetPrompt(previous)

	fmt.Printf("%sEmpty line returns to the menu.%s\n", colorDim, colorReset)
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			return nil
		}
		handle(input)
	}
}
