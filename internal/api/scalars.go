package api

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"taskboard/internal/domain"
)

// DateScalar is a calendar day serialised as YYYY-MM-DD.
var DateScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "A calendar date in YYYY-MM-DD form",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case domain.Date:
			return v.String()
		case *domain.Date:
			if v == nil {
				return nil
			}
			return v.String()
		case string:
			return v
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil
		}
		return d
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		sv, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		d, err := domain.ParseDate(sv.Value)
		if err != nil {
			return nil
		}
		return d
	},
})
