package httperr

var messages = map[string]string{
	"name_required":         "Nome é obrigatório.",
	"invalid_phone":         "Telefone inválido.",
	"service_required":      "Selecione um serviço.",
	"service_not_found":     "Serviço não encontrado.",
	"queue_empty":           "A fila está vazia.",
	"invalid_payment":       "Forma de pagamento inválida.",
	"invalid_state":         "Operação não permitida no estado atual.",
	"invalid_direction":     "Direção inválida.",
	"invalid_rating":        "A avaliação deve ser de 1 a 5.",
	"entry_not_found":       "Cliente não encontrado na fila.",
	"appointment_not_found": "Agendamento não encontrado.",
	"already_moved":         "Agendamento já foi enviado para a fila.",
	"invalid_date_or_time":  "Data ou hora inválida.",
	"invalid_recurrence":    "Quantidade de repetições inválida.",
	"product_not_found":     "Produto não encontrado.",
	"invalid_category":      "Categoria inválida.",
	"invalid_amount":        "Valor inválido.",
	"invalid_status":        "Status inválido.",
	"invalid_break":         "Duração da pausa inválida.",
	"expense_not_found":     "Despesa não encontrada.",
	"barber_not_found":      "Barbeiro não encontrado.",
	"order_conflict":        "A fila mudou. Atualize e tente novamente.",
	"nothing_to_charge":     "Serviço sem valor para cobrança.",
	"payments_disabled":     "Pagamentos não configurados.",
	"photos_disabled":       "Upload de fotos não configurado.",
	"invalid_image":         "Imagem inválida.",
	"invalid_duration":      "Duração inválida.",
	"invalid_materials":     "Materiais inválidos.",
	"description_required":  "Descrição é obrigatória.",
	"invalid_goal":          "Meta inválida.",
	"invalid_id":            "Identificador inválido.",
	"invalid_payload":       "Dados inválidos.",
	"invalid_credentials":   "E-mail ou senha inválidos.",
	"email_already_used":    "E-mail já cadastrado.",
	"slug_already_exists":   "Esse endereço já está em uso.",
	"invalid_email":         "E-mail inválido.",
	"invalid_timezone":      "Fuso horário inválido.",
	"shop_not_found":        "Barbearia não encontrada.",
	"service_inactive":      "Serviço indisponível.",
	"access_denied":         "Acesso negado.",
}

func messageFor(code, fallback string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return fallback
}
