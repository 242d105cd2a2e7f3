package agent

import (
	"context"
	"log/slog"
	"sync"

	"torii/internal/llm"
	"torii/internal/trace"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const defaultSystemPrompt = "You are a network operations assistant for a Cisco IOS router. " +
	"Use the provided tools to inspect or change device state; never invent command output. " +
	"When a tool reports an error, relay it to the user instead of guessing. " +
	"Answer in the language the user wrote in."

type ReactOption func(*ReactRunner)

func WithSystemPrompt(s string) ReactOption {
	return func(r *ReactRunner) { r.systemPrompt = s }
}

// ReactRunner implements a ReAct (Reason + Act) loop over the Responses
// API. Each invocation is stateless: the conversation lives only in the
// input slice for the duration of one Run and is discarded afterwards.
type ReactRunner struct {
	provider     llm.Provider
	registry     *Registry
	tools        []responses.ToolUnionParam
	systemPrompt string
}

func NewReactRunner(provider llm.Provider, registry *Registry, opts ...ReactOption) *ReactRunner {
	r := &ReactRunner{
		provider:     provider,
		registry:     registry,
		systemPrompt: defaultSystemPrompt,
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, t := range registry.All() {
		schema, _ := t.InputSchema().(map[string]any)
		r.tools = append(r.tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  schema,
				Strict:      openai.Bool(true),
			},
		})
	}

	return r
}

func (r *ReactRunner) Run(ctx context.Context, request string, emit func(Event)) (string, error) {
	ctx = ContextWithEmit(ctx, emit)

	truncated := request
	if len(truncated) > 200 {
		truncated = truncated[:200]
	}
	ctx, span := trace.Tracer().Start(ctx, "agent.run",
		oteltrace.WithAttributes(
			attribute.String("user.request", truncated),
		),
	)
	defer span.End()

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(r.systemPrompt, "developer"),
		responses.ResponseInputItemParamOfMessage(request, "user"),
	}

	resp, err := r.loop(ctx, input, emit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	emit(Event{Type: EventDone})
	return resp.OutputText(), nil
}

// loop is the core ReAct cycle: one LLM call per iteration, tool results
// (including errors) fed back as context so the model can adapt. It ends
// when the model returns no tool calls or the context is cancelled.
func (r *ReactRunner) loop(ctx context.Context, input []responses.ResponseInputItemUnionParam, emit func(Event)) (*responses.Response, error) {
	var resp *responses.Response
	iteration := 0

	for {
		if err := ctx.Err(); err != nil {
			emit(Event{Type: EventError, Data: "request cancelled"})
			return nil, err
		}

		llmCtx, llmSpan := trace.Tracer().Start(ctx, "llm.react",
			oteltrace.WithAttributes(attribute.Int("llm.iteration", iteration)),
		)

		var err error
		resp, err = r.provider.ChatStream(llmCtx, input, r.tools, func(token string) {
			emit(Event{Type: EventToken, Data: token})
		})
		if err != nil {
			llmSpan.RecordError(err)
			llmSpan.SetStatus(codes.Error, err.Error())
			llmSpan.End()
			emit(Event{Type: EventError, Data: err.Error()})
			return nil, err
		}

		llmSpan.SetAttributes(
			attribute.String("llm.model", string(resp.Model)),
			attribute.Int64("llm.input_tokens", resp.Usage.InputTokens),
			attribute.Int64("llm.output_tokens", resp.Usage.OutputTokens),
		)
		llmSpan.End()
		iteration++

		input = append(input, OutputToInput(resp.Output)...)

		var calls []responses.ResponseOutputItemUnion
		for _, item := range resp.Output {
			if item.Type == "function_call" {
				calls = append(calls, item)
			}
		}

		if len(calls) == 0 {
			return resp, nil
		}

		results := r.act(ctx, calls, emit)
		input = append(input, results...)
	}
}

// act executes tool calls in parallel. Each call is independent: tools
// open and close their own device session, so no coordination beyond the
// WaitGroup is needed.
func (r *ReactRunner) act(ctx context.Context, calls []responses.ResponseOutputItemUnion, emit func(Event)) []responses.ResponseInputItemUnionParam {
	for _, call := range calls {
		fc := call.AsFunctionCall()
		emit(Event{Type: EventToolCall, Data: map[string]string{
			"name":      fc.Name,
			"arguments": fc.Arguments,
		}})
	}

	var wg sync.WaitGroup
	results := make([]responses.ResponseInputItemUnionParam, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call responses.ResponseOutputItemUnion) {
			defer wg.Done()
			fc := call.AsFunctionCall()

			tool, ok := r.registry.Get(fc.Name)
			if !ok {
				slog.Warn("unknown tool call", "name", fc.Name)
				results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, "error: unknown tool")
				emit(Event{Type: EventToolResult, Data: map[string]string{
					"name":    fc.Name,
					"content": "error: unknown tool",
				}})
				return
			}

			result, err := withTrace(tool).Execute(ctx, fc.Arguments)
			if err != nil {
				slog.Warn("tool execution failed", "name", fc.Name, "error", err)
				errMsg := "error: " + err.Error()
				results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, errMsg)
				emit(Event{Type: EventToolResult, Data: map[string]string{
					"name":    fc.Name,
					"content": errMsg,
				}})
				return
			}

			results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, result)
			emit(Event{Type: EventToolResult, Data: map[string]string{
				"name":    fc.Name,
				"content": result,
			}})
		}(i, call)
	}

	wg.Wait()
	return results
}
