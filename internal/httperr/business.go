package httperr

import "errors"

// BusinessError é uma violação de regra de domínio (transição de
// estado inválida, por exemplo), distinta das falhas de infraestrutura
// que viram 500. O código é estável e serve de contrato com o painel.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness confere se err carrega a regra violada identificada por
// code, atravessando wrappers.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
