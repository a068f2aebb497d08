// Copyright © 2024 The ELPS authors

package librecord

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
	"github.com/luthersystems/epilepsy/lang/langlib/libuint"
)

// LoadPackage adds the record operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("record", libutil.Formals("fields"), builtinRecord,
		`Returns a record holding the items of fields in order.`),
	libutil.FunctionDoc("get", libutil.Formals("record", "index"), builtinGet,
		`
		Returns the field of record at index, counting from zero.  An
		index at or past the number of fields is a field-index-out-of-range
		error.
		`),
	libutil.FunctionDoc("recordLen", libutil.Formals("record"), builtinRecordLen,
		`Returns the number of fields in record.`),
}

func builtinRecord(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Quote(args[0].Items()...), nil
}

func builtinGet(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	fields := args[0].Items()
	i, err := libuint.Parse(args[1])
	if err != nil {
		return nil, err
	}
	if i >= uint64(len(fields)) {
		return nil, lang.FieldIndexOutOfRange(int(i), len(fields))
	}
	return fields[i], nil
}

func builtinRecordLen(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Int(args[0].Len()), nil
}
