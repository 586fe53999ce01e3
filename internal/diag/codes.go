package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedRawString    Code = 1005
	LexUnterminatedChar         Code = 1006

	// Структура: скобки и препроцессор
	StrInfo               Code = 2000
	StrUnmatchedClose     Code = 2001
	StrUnclosedBrace      Code = 2002
	StrUnclosedParen      Code = 2003
	StrUnbalancedBranches Code = 2004
	StrStrayElse          Code = 2005
	StrStrayEndif         Code = 2006
	StrUnclosedPreproc    Code = 2007
	StrMismatchedClose    Code = 2008

	// Ввод-вывод
	IOInfo           Code = 4000
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Конфигурация
	CfgInfo            Code = 5000
	CfgUnknownOption   Code = 5001
	CfgBadValue        Code = 5002
	CfgUnknownLanguage Code = 5003
	CfgBadTypeFile     Code = 5004
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number",
	LexUnterminatedRawString:    "Unterminated raw string literal",
	LexUnterminatedChar:         "Unterminated character literal",
	StrInfo:                     "Structure information",
	StrUnmatchedClose:           "Closing bracket without opener",
	StrUnclosedBrace:            "Brace not closed before end of file",
	StrUnclosedParen:            "Parenthesis not closed before end of statement",
	StrUnbalancedBranches:       "Preprocessor branches leave different nesting",
	StrStrayElse:                "#else or #elif without #if",
	StrStrayEndif:               "#endif without #if",
	StrUnclosedPreproc:          "#if not closed before end of file",
	StrMismatchedClose:          "Closing bracket does not match opener",
	IOInfo:                      "I/O information",
	IOLoadFileError:             "Failed to load file",
	IOWriteFileError:            "Failed to write file",
	CfgInfo:                     "Configuration information",
	CfgUnknownOption:            "Unknown option",
	CfgBadValue:                 "Invalid option value",
	CfgUnknownLanguage:          "Unknown language",
	CfgBadTypeFile:              "Unreadable type file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
