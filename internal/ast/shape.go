package ast

// slot names where a document field lands on a Node.
type slot uint8

const (
	slotA slot = iota + 1
	slotB
	slotC
	slotD
	slotParams
	slotList
	slotName
)

// scalar is the document type of a slotName field.
type scalar uint8

const (
	scalarString scalar = iota
	scalarNumber
	scalarBool
	// scalarRaw is a {raw, cooked} object of which only raw is kept.
	scalarRaw
)

type field struct {
	key      string
	slot     slot
	optional bool
	scalar   scalar
	// wrapper names an intermediate node type holding the list, e.g. the
	// ClassBody between a class and its members.
	wrapper string
}

type flagField struct {
	key  string
	flag Flags
}

type shape struct {
	fields []field
	flags  []flagField
}

var (
	fnFlags     = []flagField{{"async", FlagAsync}, {"generator", FlagGenerator}}
	methodFlags = []flagField{{"async", FlagAsync}, {"generator", FlagGenerator}, {"computed", FlagComputed}}
)

// shapes maps each kind to its Babel document fields. Decode and Encode are
// both driven by this table so the two stay symmetric.
var shapes = map[Kind]shape{
	KindProgram:             {fields: []field{{key: "body", slot: slotList}}},
	KindBlockStatement:      {fields: []field{{key: "body", slot: slotList}}},
	KindEmptyStatement:      {},
	KindExpressionStatement: {fields: []field{{key: "expression", slot: slotA}}},
	KindReturnStatement:     {fields: []field{{key: "argument", slot: slotA, optional: true}}},
	KindThrowStatement:      {fields: []field{{key: "argument", slot: slotA}}},
	KindIfStatement: {fields: []field{
		{key: "test", slot: slotA},
		{key: "consequent", slot: slotB},
		{key: "alternate", slot: slotC, optional: true},
	}},
	KindWhileStatement:   {fields: []field{{key: "test", slot: slotA}, {key: "body", slot: slotB}}},
	KindDoWhileStatement: {fields: []field{{key: "body", slot: slotA}, {key: "test", slot: slotB}}},
	KindForStatement: {fields: []field{
		{key: "init", slot: slotA, optional: true},
		{key: "test", slot: slotB, optional: true},
		{key: "update", slot: slotC, optional: true},
		{key: "body", slot: slotD},
	}},
	KindForInStatement: {fields: []field{
		{key: "left", slot: slotA},
		{key: "right", slot: slotB},
		{key: "body", slot: slotC},
	}},
	KindForOfStatement: {
		fields: []field{
			{key: "left", slot: slotA},
			{key: "right", slot: slotB},
			{key: "body", slot: slotC},
		},
		flags: []flagField{{"await", FlagAwait}},
	},
	KindSwitchStatement: {fields: []field{
		{key: "discriminant", slot: slotA},
		{key: "cases", slot: slotList},
	}},
	KindSwitchCase: {fields: []field{
		{key: "test", slot: slotA, optional: true},
		{key: "consequent", slot: slotList},
	}},
	KindBreakStatement:    {fields: []field{{key: "label", slot: slotA, optional: true}}},
	KindContinueStatement: {fields: []field{{key: "label", slot: slotA, optional: true}}},
	KindLabeledStatement:  {fields: []field{{key: "label", slot: slotA}, {key: "body", slot: slotB}}},
	KindTryStatement: {fields: []field{
		{key: "block", slot: slotA},
		{key: "handler", slot: slotB, optional: true},
		{key: "finalizer", slot: slotC, optional: true},
	}},
	KindCatchClause: {fields: []field{{key: "param", slot: slotA, optional: true}, {key: "body", slot: slotB}}},
	KindVariableDeclaration: {fields: []field{
		{key: "kind", slot: slotName},
		{key: "declarations", slot: slotList},
	}},
	KindVariableDeclarator: {fields: []field{{key: "id", slot: slotA}, {key: "init", slot: slotB, optional: true}}},
	KindIdentifier:         {fields: []field{{key: "name", slot: slotName}}},
	KindPrivateName:        {fields: []field{{key: "id", slot: slotA}}},
	KindThisExpression:     {},
	KindSuper:              {},
	KindStringLiteral:      {fields: []field{{key: "value", slot: slotName}}},
	KindNumericLiteral:     {fields: []field{{key: "value", slot: slotName, scalar: scalarNumber}}},
	KindBooleanLiteral:     {fields: []field{{key: "value", slot: slotName, scalar: scalarBool}}},
	KindNullLiteral:        {},
	KindTemplateLiteral: {fields: []field{
		{key: "quasis", slot: slotParams},
		{key: "expressions", slot: slotList},
	}},
	KindTemplateElement: {
		fields: []field{{key: "value", slot: slotName, scalar: scalarRaw}},
		flags:  []flagField{{"tail", FlagTail}},
	},
	KindTaggedTemplateExpression: {fields: []field{{key: "tag", slot: slotA}, {key: "quasi", slot: slotB}}},
	KindCallExpression: {fields: []field{
		{key: "callee", slot: slotA},
		{key: "arguments", slot: slotList},
	}},
	KindNewExpression: {fields: []field{
		{key: "callee", slot: slotA},
		{key: "arguments", slot: slotList},
	}},
	KindMemberExpression: {
		fields: []field{{key: "object", slot: slotA}, {key: "property", slot: slotB}},
		flags:  []flagField{{"computed", FlagComputed}},
	},
	KindAwaitExpression: {fields: []field{{key: "argument", slot: slotA}}},
	KindYieldExpression: {
		fields: []field{{key: "argument", slot: slotA, optional: true}},
		flags:  []flagField{{"delegate", FlagDelegate}},
	},
	KindUnaryExpression: {fields: []field{
		{key: "operator", slot: slotName},
		{key: "argument", slot: slotA},
	}},
	KindUpdateExpression: {
		fields: []field{{key: "operator", slot: slotName}, {key: "argument", slot: slotA}},
		flags:  []flagField{{"prefix", FlagPrefix}},
	},
	KindBinaryExpression: {fields: []field{
		{key: "operator", slot: slotName},
		{key: "left", slot: slotA},
		{key: "right", slot: slotB},
	}},
	KindLogicalExpression: {fields: []field{
		{key: "operator", slot: slotName},
		{key: "left", slot: slotA},
		{key: "right", slot: slotB},
	}},
	KindConditionalExpression: {fields: []field{
		{key: "test", slot: slotA},
		{key: "consequent", slot: slotB},
		{key: "alternate", slot: slotC},
	}},
	KindSequenceExpression: {fields: []field{{key: "expressions", slot: slotList}}},
	KindAssignmentExpression: {fields: []field{
		{key: "operator", slot: slotName},
		{key: "left", slot: slotA},
		{key: "right", slot: slotB},
	}},
	KindArrayExpression:  {fields: []field{{key: "elements", slot: slotList}}},
	KindSpreadElement:    {fields: []field{{key: "argument", slot: slotA}}},
	KindObjectExpression: {fields: []field{{key: "properties", slot: slotList}}},
	KindObjectProperty: {
		fields: []field{{key: "key", slot: slotA}, {key: "value", slot: slotB}},
		flags:  []flagField{{"computed", FlagComputed}, {"shorthand", FlagShorthand}},
	},
	KindObjectMethod: {
		fields: []field{
			{key: "kind", slot: slotName},
			{key: "key", slot: slotA},
			{key: "params", slot: slotParams},
			{key: "body", slot: slotB},
		},
		flags: methodFlags,
	},
	KindFunctionDeclaration: {
		fields: []field{
			{key: "id", slot: slotA},
			{key: "params", slot: slotParams},
			{key: "body", slot: slotB},
		},
		flags: fnFlags,
	},
	KindFunctionExpression: {
		fields: []field{
			{key: "id", slot: slotA, optional: true},
			{key: "params", slot: slotParams},
			{key: "body", slot: slotB},
		},
		flags: fnFlags,
	},
	KindArrowFunctionExpression: {
		fields: []field{{key: "params", slot: slotParams}, {key: "body", slot: slotB}},
		flags:  []flagField{{"async", FlagAsync}},
	},
	KindClassDeclaration: {fields: []field{
		{key: "id", slot: slotA},
		{key: "superClass", slot: slotB, optional: true},
		{key: "body", slot: slotList, wrapper: "ClassBody"},
	}},
	KindClassExpression: {fields: []field{
		{key: "id", slot: slotA, optional: true},
		{key: "superClass", slot: slotB, optional: true},
		{key: "body", slot: slotList, wrapper: "ClassBody"},
	}},
	KindClassMethod: {
		fields: []field{
			{key: "kind", slot: slotName},
			{key: "key", slot: slotA},
			{key: "params", slot: slotParams},
			{key: "body", slot: slotB},
		},
		flags: append([]flagField{{"static", FlagStatic}}, methodFlags...),
	},
	KindClassPrivateMethod: {
		fields: []field{
			{key: "kind", slot: slotName},
			{key: "key", slot: slotA},
			{key: "params", slot: slotParams},
			{key: "body", slot: slotB},
		},
		flags: append([]flagField{{"static", FlagStatic}}, fnFlags...),
	},
	KindClassProperty: {
		fields: []field{{key: "key", slot: slotA}, {key: "value", slot: slotB, optional: true}},
		flags:  []flagField{{"computed", FlagComputed}, {"static", FlagStatic}},
	},
	KindClassPrivateProperty: {
		fields: []field{{key: "key", slot: slotA}, {key: "value", slot: slotB, optional: true}},
		flags:  []flagField{{"static", FlagStatic}},
	},
	KindStaticBlock:       {fields: []field{{key: "body", slot: slotList}}},
	KindObjectPattern:     {fields: []field{{key: "properties", slot: slotList}}},
	KindArrayPattern:      {fields: []field{{key: "elements", slot: slotList}}},
	KindAssignmentPattern: {fields: []field{{key: "left", slot: slotA}, {key: "right", slot: slotB}}},
	KindRestElement:       {fields: []field{{key: "argument", slot: slotA}}},
}
