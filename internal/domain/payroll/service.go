package payroll

import "context"

type MatrixService interface {
	Build(ctx context.Context, req MatrixRequest) (Matrix, error)
	ExportXLSX(ctx context.Context, req MatrixRequest) ([]byte, error)
}
