// Package fuzztests houses native fuzz harnesses for the ember pipeline
// (source -> lexer -> parser -> interpreter). Besides guarding against
// panics and hangs they check the lexer's position bookkeeping and the
// shape of every error the pipeline can return.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// интерпретатор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
