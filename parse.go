package plistream

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/reoring/plistream/i18n"
	eng "github.com/reoring/plistream/internal/engine"
)

// Parse decodes an XML property list held in memory. It is the entry point
// most callers want; the Playlists entry is elided unless opt.WithPlaylists
// is set.
func Parse(data []byte, opts ...ParseOpt) (Value, error) {
	return ParseFrom(context.Background(), XMLBytes(data), opts...)
}

// ParseFrom drives the plist state machine with events from src until the
// root element closes. Trailing input is still consumed so tokenizer errors
// after the root are reported.
func ParseFrom(ctx context.Context, src Source, opts ...ParseOpt) (Value, error) {
	if src == nil {
		return nil, singleIssue(CodeSyntax, "nil source")
	}
	opt := lastOpt(opts)

	var sink func(eng.SimpleIssue)
	if opt.IssueSink != nil {
		sink = func(si eng.SimpleIssue) {
			opt.IssueSink(Issue{Path: si.Path, Code: si.Code, Message: i18n.T(si.Code, nil), Offset: si.Offset})
		}
	}
	enforced := eng.WrapWithEnforcement(engineEventSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})

	st := newParseState(opt)
	if err := eng.Run(ctx, enforced, st); err != nil {
		return nil, toIssues(err, enforced)
	}
	return st.result, nil
}

// ParseReader decodes a property list from r. When MaxBytes is set the size
// cap is enforced up front; otherwise events are streamed from r.
func ParseReader(ctx context.Context, r io.Reader, opts ...ParseOpt) (Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, AppendIssues(nil, Issue{Code: CodeSyntax, Path: "/", Message: err.Error(), Cause: err, Offset: -1})
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, singleIssue(CodeTruncated, i18n.T(CodeTruncated, nil))
		}
		return ParseFrom(ctx, XMLReader(bytes.NewReader(data)), opts...)
	}
	return ParseFrom(ctx, XMLReader(r), opts...)
}

// ---- helpers (error mapping) ----

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg, Offset: -1})
}

func toIssues(err error, src *eng.EnforcingSource) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	it := Issue{Path: src.Path(), Offset: src.Location(), Cause: err}

	var se *structuralError
	var ie eng.IssueError
	var syn *eng.SyntaxError
	switch {
	case errors.As(err, &se):
		it.Code, it.Message, it.Cause = se.code, se.msg, se.err
	case errors.As(err, &ie):
		it.Code, it.Path, it.Offset = ie.Code, ie.Path, ie.Offset
		it.Message = i18n.T(ie.Code, nil)
		it.Cause = nil
	case errors.As(err, &syn):
		it.Code = CodeSyntax
		it.Offset = syn.Offset
		it.Message = i18n.T(CodeSyntax, map[string]string{"err": syn.Err.Error()})
		it.Cause = syn.Err
	case errors.Is(err, eng.ErrIncomplete):
		it.Code = CodeTruncated
		it.Message = i18n.T(CodeTruncated, nil)
	case errors.Is(err, eng.ErrTrailingContent):
		it.Code = CodeUnbalancedRoot
		it.Message = i18n.T(CodeUnbalancedRoot, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		it.Code = CodeCanceled
		it.Message = i18n.T(CodeCanceled, nil)
	default:
		// errors from custom Sources are treated like tokenizer failures
		it.Code = CodeSyntax
		it.Message = i18n.T(CodeSyntax, map[string]string{"err": err.Error()})
	}
	return AppendIssues(nil, it)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
