package ast

// Kind is the closed set of node kinds the tree can hold.
//
// Child slot usage per kind (unused slots are NoNode / nil):
//
//	Program                   List=body
//	BlockStatement            List=body
//	EmptyStatement
//	ExpressionStatement       A=expression
//	ReturnStatement           A=argument?
//	ThrowStatement            A=argument
//	IfStatement               A=test B=consequent C=alternate?
//	WhileStatement            A=test B=body
//	DoWhileStatement          A=body B=test
//	ForStatement              A=init? B=test? C=update? D=body
//	ForInStatement            A=left B=right C=body
//	ForOfStatement            A=left B=right C=body             (FlagAwait)
//	SwitchStatement           A=discriminant List=cases
//	SwitchCase                A=test? List=consequent
//	BreakStatement            A=label?
//	ContinueStatement         A=label?
//	LabeledStatement          A=label B=body
//	TryStatement              A=block B=handler? C=finalizer?
//	CatchClause               A=param? B=body
//	VariableDeclaration       Name=kind ("var"|"let"|"const") List=declarations
//	VariableDeclarator        A=id B=init?
//	Identifier                Name=name
//	PrivateName               A=id
//	StringLiteral             Name=value
//	NumericLiteral            Name=raw number text
//	BooleanLiteral            Name="true"|"false"
//	TemplateLiteral           Params=quasis List=expressions
//	TemplateElement           Name=raw text                     (FlagTail)
//	TaggedTemplateExpression  A=tag B=quasi
//	CallExpression            A=callee List=arguments            (FlagPure)
//	NewExpression             A=callee List=arguments            (FlagPure)
//	MemberExpression          A=object B=property                (FlagComputed)
//	AwaitExpression           A=argument
//	YieldExpression           A=argument?                        (FlagDelegate)
//	UnaryExpression           Name=operator A=argument
//	UpdateExpression          Name=operator A=argument           (FlagPrefix)
//	BinaryExpression          Name=operator A=left B=right
//	LogicalExpression         Name=operator A=left B=right
//	AssignmentExpression      Name=operator A=left B=right
//	ConditionalExpression     A=test B=consequent C=alternate
//	SequenceExpression        List=expressions
//	ArrayExpression           List=elements
//	SpreadElement             A=argument
//	ObjectExpression          List=properties
//	ObjectProperty            A=key B=value                      (FlagComputed, FlagShorthand)
//	ObjectMethod              Name=kind A=key Params B=body      (FlagAsync, FlagGenerator, FlagComputed)
//	FunctionDeclaration       A=id Params B=body                 (FlagAsync, FlagGenerator)
//	FunctionExpression        A=id? Params B=body                (FlagAsync, FlagGenerator)
//	ArrowFunctionExpression   Params B=body (block or expression) (FlagAsync)
//	ClassDeclaration          A=id B=superClass? List=members
//	ClassExpression           A=id? B=superClass? List=members
//	ClassMethod               Name=kind A=key Params B=body      (FlagAsync, FlagGenerator, FlagComputed, FlagStatic)
//	ClassPrivateMethod        Name=kind A=key Params B=body      (FlagAsync, FlagGenerator, FlagStatic)
//	ClassProperty             A=key B=value?                     (FlagComputed, FlagStatic)
//	ClassPrivateProperty      A=key B=value?                     (FlagStatic)
//	StaticBlock               List=body
//	ObjectPattern             List=properties
//	ArrayPattern              List=elements
//	AssignmentPattern         A=left B=right
//	RestElement               A=argument
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindBlockStatement
	KindEmptyStatement
	KindExpressionStatement
	KindReturnStatement
	KindThrowStatement
	KindIfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindSwitchStatement
	KindSwitchCase
	KindBreakStatement
	KindContinueStatement
	KindLabeledStatement
	KindTryStatement
	KindCatchClause
	KindVariableDeclaration
	KindVariableDeclarator
	KindIdentifier
	KindPrivateName
	KindThisExpression
	KindSuper
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindTemplateLiteral
	KindTemplateElement
	KindTaggedTemplateExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindAwaitExpression
	KindYieldExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindSequenceExpression
	KindArrayExpression
	KindSpreadElement
	KindObjectExpression
	KindObjectProperty
	KindObjectMethod
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassDeclaration
	KindClassExpression
	KindClassMethod
	KindClassPrivateMethod
	KindClassProperty
	KindClassPrivateProperty
	KindStaticBlock
	KindObjectPattern
	KindArrayPattern
	KindAssignmentPattern
	KindRestElement

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:                  "Invalid",
	KindProgram:                  "Program",
	KindBlockStatement:           "BlockStatement",
	KindEmptyStatement:           "EmptyStatement",
	KindExpressionStatement:      "ExpressionStatement",
	KindReturnStatement:          "ReturnStatement",
	KindThrowStatement:           "ThrowStatement",
	KindIfStatement:              "IfStatement",
	KindWhileStatement:           "WhileStatement",
	KindDoWhileStatement:         "DoWhileStatement",
	KindForStatement:             "ForStatement",
	KindForInStatement:           "ForInStatement",
	KindForOfStatement:           "ForOfStatement",
	KindSwitchStatement:          "SwitchStatement",
	KindSwitchCase:               "SwitchCase",
	KindBreakStatement:           "BreakStatement",
	KindContinueStatement:        "ContinueStatement",
	KindLabeledStatement:         "LabeledStatement",
	KindTryStatement:             "TryStatement",
	KindCatchClause:              "CatchClause",
	KindVariableDeclaration:      "VariableDeclaration",
	KindVariableDeclarator:       "VariableDeclarator",
	KindIdentifier:               "Identifier",
	KindPrivateName:              "PrivateName",
	KindThisExpression:           "ThisExpression",
	KindSuper:                    "Super",
	KindStringLiteral:            "StringLiteral",
	KindNumericLiteral:           "NumericLiteral",
	KindBooleanLiteral:           "BooleanLiteral",
	KindNullLiteral:              "NullLiteral",
	KindTemplateLiteral:          "TemplateLiteral",
	KindTemplateElement:          "TemplateElement",
	KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindMemberExpression:         "MemberExpression",
	KindAwaitExpression:          "AwaitExpression",
	KindYieldExpression:          "YieldExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindLogicalExpression:        "LogicalExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindSequenceExpression:       "SequenceExpression",
	KindArrayExpression:          "ArrayExpression",
	KindSpreadElement:            "SpreadElement",
	KindObjectExpression:         "ObjectExpression",
	KindObjectProperty:           "ObjectProperty",
	KindObjectMethod:             "ObjectMethod",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindFunctionExpression:       "FunctionExpression",
	KindArrowFunctionExpression:  "ArrowFunctionExpression",
	KindClassDeclaration:         "ClassDeclaration",
	KindClassExpression:          "ClassExpression",
	KindClassMethod:              "ClassMethod",
	KindClassPrivateMethod:       "ClassPrivateMethod",
	KindClassProperty:            "ClassProperty",
	KindClassPrivateProperty:     "ClassPrivateProperty",
	KindStaticBlock:              "StaticBlock",
	KindObjectPattern:            "ObjectPattern",
	KindArrayPattern:             "ArrayPattern",
	KindAssignmentPattern:        "AssignmentPattern",
	KindRestElement:              "RestElement",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KindProgram; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// String returns the Babel node type name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Invalid"
}

// KindOf resolves a Babel node type name. Unknown names yield KindInvalid.
func KindOf(name string) Kind {
	return kindsByName[name]
}

// IsFunction reports whether k is any function-like kind, arrows included.
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression,
		KindObjectMethod, KindClassMethod, KindClassPrivateMethod:
		return true
	}
	return false
}

// IsMethod reports whether k is an object or class method, private
// methods included.
func (k Kind) IsMethod() bool {
	return k == KindObjectMethod || k == KindClassMethod || k == KindClassPrivateMethod
}

// IsClassField reports whether k is a public or private class field.
func (k Kind) IsClassField() bool {
	return k == KindClassProperty || k == KindClassPrivateProperty
}

// IsClass reports whether k is a class declaration or expression.
func (k Kind) IsClass() bool {
	return k == KindClassDeclaration || k == KindClassExpression
}

// Flags carries boolean node attributes.
type Flags uint16

const (
	FlagAsync Flags = 1 << iota
	FlagGenerator
	FlagComputed
	FlagStatic
	FlagDelegate
	FlagShorthand
	FlagPrefix
	FlagTail
	FlagAwait

	// FlagPure marks a call as free of observable side effects. Printed as a
	// leading /*#__PURE__*/ comment.
	FlagPure
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}
