package analyzer

import (
	"errors"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"enum-update-generator/internal/analyze"
	"enum-update-generator/internal/annotate"
	"enum-update-generator/internal/gen"
	"enum-update-generator/internal/group"
)

func (o *options) run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, errors.New("inspector result missing")
	}

	builder := analyze.NewBuilder(pass.Fset, pass.Pkg, pass.TypesInfo)
	opts := annotate.Options{TagKey: o.tag}

	insp.Preorder([]ast.Node{(*ast.File)(nil)}, func(n ast.Node) {
		file, _ := n.(*ast.File)
		if !o.generated && ast.IsGenerated(file) {
			return
		}

		tokFile := pass.Fset.File(file.Pos())

		for _, raw := range builder.File(file) {
			if !annotate.Annotated(raw, opts) {
				continue
			}

			if err := check(raw, opts); err != nil {
				pass.Report(diagnosticFor(tokFile, file, raw, err))
			}
		}
	})

	return nil, nil
}

// check runs extraction and synthesis on one record.
func check(raw *analyze.RawRecord, opts annotate.Options) error {
	desc, err := annotate.Record(raw, opts)
	if err != nil {
		return err
	}

	_, _, err = gen.Synthesize(desc, group.Aggregate(desc.Fields), gen.Options{})

	return err
}

// diagnosticFor places err at its annotation, or at the record name.
func diagnosticFor(tokFile *token.File, file *ast.File, raw *analyze.RawRecord, err error) analysis.Diagnostic {
	pos := toPos(tokFile, raw.Pos)
	message := err.Error()

	var extractErr *annotate.Error
	if errors.As(err, &extractErr) {
		message = extractErr.Message()
		if p := toPos(tokFile, extractErr.Pos); p.IsValid() {
			pos = p
		}
	}

	if !pos.IsValid() {
		pos = file.Name.Pos()
	}

	return analysis.Diagnostic{
		Pos:      pos,
		Category: "annotation",
		Message:  message,
	}
}

// toPos converts a position within tokFile back to a token.Pos.
func toPos(tokFile *token.File, p token.Position) token.Pos {
	if tokFile == nil || p.Filename != tokFile.Name() || p.Line < 1 || p.Line > tokFile.LineCount() {
		return token.NoPos
	}

	return tokFile.LineStart(p.Line) + token.Pos(p.Column-1)
}
