package assembler

import (
	"context"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

// loadFunctions is phase 8: normal functions, procedures, aggregates and
// window functions, dispatched into their schema's kind-specific
// collection. Argument shape follows pg_proc's own representation:
// proallargtypes (all modes) falls back to proargtypes (IN-only) when the
// function has no OUT/INOUT/VARIADIC parameters, and proargmodes is
// entirely absent in that case too, per Postgres's own storage convention
// (grounded on dbgraph/internal/adapters.queryFetchFunctionBody's simpler
// single-return-type projection, generalized here to the full argument
// list spec.md 3.1 adds).
func (a *Assembler) loadFunctions(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "function", filter, args)
	if err != nil {
		return err
	}

	for _, row := range result.Rows {
		oid := oidVal(row, "oid")
		schema, ok := db.SchemaByOID(oidVal(row, "schema_oid"))
		if !ok {
			a.Logger.Warn().Uint32("oid", oid).Msg("function: schema not loaded, skipping")
			continue
		}
		kind, ok := catalog.FunctionKindFromCode(charVal(row, "kind"))
		if !ok {
			a.Logger.Warn().Uint32("oid", oid).Msg("function: unrecognized prokind, skipping")
			continue
		}

		f := &catalog.Function{
			OID:        oid,
			Name:       str(row, "name"),
			Kind:       kind,
			Schema:     schema,
			Language:   str(row, "language"),
			Source:     str(row, "source"),
			Volatility: volatilityFromCode(charVal(row, "volatility")),
		}
		applyComment(&f.Commented, row, a.Config.CommentDataToken)

		if kind != catalog.FunctionProcedure {
			f.ReturnType = st.typesByOID[oidVal(row, "return_type_oid")]
		}
		f.Arguments = buildArguments(row, st)

		st.functionsByOID[oid] = f

		var target interface{ Add(*catalog.Function) error }
		switch kind {
		case catalog.FunctionNormal:
			target = schema.NormalFunctions
		case catalog.FunctionProcedure:
			target = schema.Procedures
		case catalog.FunctionAggregate:
			target = schema.AggregateFunctions
		case catalog.FunctionWindow:
			target = schema.WindowFunctions
		}
		if err := target.Add(f); err != nil {
			return err
		}
	}
	return nil
}

func volatilityFromCode(code byte) catalog.Volatility {
	switch code {
	case 's':
		return catalog.VolatilityStable
	case 'i':
		return catalog.VolatilityImmutable
	default:
		return catalog.VolatilityVolatile
	}
}

func buildArguments(row rowT, st *buildState) []*catalog.Argument {
	names := stringSlice(row, "argument_names")
	modes := stringSlice(row, "argument_modes")
	allTypes := oidSlice(row, "all_argument_type_oids")
	if allTypes == nil {
		allTypes = oidSlice(row, "in_argument_type_oids")
	}

	args := make([]*catalog.Argument, 0, len(allTypes))
	for i, typeOID := range allTypes {
		arg := &catalog.Argument{Position: i}
		if i < len(names) {
			arg.Name = names[i]
		}
		if i < len(modes) {
			arg.Mode = argumentModeFromCode(modes[i])
		} else {
			arg.Mode = catalog.ArgIn
		}
		arg.Type = st.typesByOID[typeOID]
		args = append(args, arg)
	}
	return args
}

func argumentModeFromCode(code string) catalog.ArgumentMode {
	switch code {
	case "o":
		return catalog.ArgOut
	case "b":
		return catalog.ArgInOut
	case "v":
		return catalog.ArgVariadic
	default:
		return catalog.ArgIn
	}
}
