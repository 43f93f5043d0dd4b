package rules

// Default returns a fresh copy of the Portuguese rule set tuned for pitch
// event recordings.
func Default() *Set {
	return &Set{
		Vocabulary: defaultVocabulary(),
		Fillers:    defaultFillers(),
		Topics:     defaultTopics(),
	}
}

func defaultVocabulary() Vocabulary {
	return Vocabulary{
		{Canonical: "Shark Tank", Variants: []string{"Shark Ten", "Shark Tank"}},
		{Canonical: "Sharks", Variants: []string{"Cháx", "Shark"}},
		{Canonical: "ChatGPT", Variants: []string{"chat i p t", "chat IPT", "chat gpt", "chatgpt", "xatipt"}},
		{Canonical: "storytelling", Variants: []string{
			"história intérprete", "story intérprete", "história telling", "estória telling",
			"story telling", "story télia", "história télia", "estorytelling", "story tell", "storytel",
		}},
		{Canonical: "pré-pitch", Variants: []string{"pre pitch", "pré pitch", "prepitch", "pre-pitch", "pre-pit", "prépit", "prepit", "pepit"}},
		{Canonical: "pitch", Variants: []string{"pitchi", "pichi", "PTIP", "pitt", "bit", "pit"}},
		{Canonical: "slides", Variants: []string{"exides", "exide", "slids"}},
		{Canonical: "Impulsione", Variants: []string{"impulsionian", "impulsionan", "impusione", "impulsione"}},
		{Canonical: "Solta Beauty", Variants: []string{"solta beuty", "solta biuti", "solta beauty"}},
		{Canonical: "MVP", Variants: []string{"eme vê pê", "m v p", "m.v.p", "mvp"}},
		{Canonical: "ROI", Variants: []string{"erre o i", "r o i", "r.o.i", "roi"}},
		{Canonical: "call-to-action", Variants: []string{"call tu éction", "call tu action", "call to action"}},
		{Canonical: "payback", Variants: []string{"pay back", "pei back", "peiback"}},
		{Canonical: "pró-validação", Variants: []string{"pro validação", "provalidação"}},
		{Canonical: "destrinchar", Variants: []string{"distrinchar", "destrinchan"}},
		{Canonical: "fluxograma", Variants: []string{"fluxo-grama", "fluxo grama"}},
		{Canonical: "prontuário eletrônico", Variants: []string{"pronto arimétrico"}},
		{Canonical: "protótipo", Variants: []string{"prototipo"}},
		{Canonical: "mentoria", Variants: []string{"mentories", "mentorie"}},
		{Canonical: "capilar", Variants: []string{"capitalá"}},
		{Canonical: "frizz", Variants: []string{"fris"}},
		{Canonical: "Anelícia Libardoni", Variants: []string{"Anuletícia Libardo"}},
		{Canonical: "Distrito 28", Variants: []string{"distrito 28"}},
		{Canonical: "Unimed", Variants: []string{"unimed"}},
		{Canonical: "SIAC", Variants: []string{"siac", "siak"}},
		{Canonical: "IBAMA", Variants: []string{"ibama"}},
		{Canonical: "exemplo", Variants: []string{"exágio"}},
	}
}

func defaultFillers() Fillers {
	return Fillers{
		Light:      []string{`né\?`, `tá\?`, `ah`, `oh`, `eh`},
		Medium:     []string{`pois é`, `né`, `tá`, `tipo`, `assim`, `sabe`, `entendeu`},
		Aggressive: []string{`então`, `enfim`, `é\.\.\.+`, `uh`, `ahn`, `cara`, `mano`, `velho`},
	}
}

func defaultTopics() Taxonomy {
	return Taxonomy{
		{Name: "Apresentação", Keywords: []string{"apresentação", "capa", "logo", "slogan", "primeiro slide"}},
		{Name: "Problema", Keywords: []string{"problema", "dor", "história", "storytelling", "validação", "dados", "pesquisa"}},
		{Name: "Solução", Keywords: []string{"solução", "protótipo", "fluxo", "funcionalidade", "aplicativo", "sistema"}},
		{Name: "Benefícios", Keywords: []string{"benefícios", "resultados", "impacto", "métrica", "indicador"}},
		{Name: "Diferencial", Keywords: []string{"diferencial", "comparativo", "processo atual", "ganho"}},
		{Name: "Time", Keywords: []string{"time", "equipe", "membros", "competências", "especialista"}},
		{Name: "Próximos Passos", Keywords: []string{"próximos passos", "plano", "implementação", "cronograma", "riscos", "investimento", "recursos"}},
		{Name: "Call to Action", Keywords: []string{"call to action", "call-to-action", "chamada para ação", "você", "invista", "revolucionar"}},
		{Name: "Avaliação", Keywords: []string{"banca avaliadora", "banca", "avaliar", "observar", "pontuar", "perguntas frequentes"}},
		{Name: "Regras", Keywords: []string{"regras", "presença", "engajamento", "mentoria", "planilha", "prazo", "dia 18"}},
		{Name: "Exemplo", Keywords: []string{"Shark Tank", "exemplo", "vídeo", "Solta Beauty"}},
		{Name: "Logística", Keywords: []string{"pré-pitch", "pre-pitch", "Distrito 28", "hub", "horário", "local", "presencial", "online"}},
		{Name: "Finalização", Keywords: []string{"música", "foto", "lista de presença", "QR Code", "encerrar"}},
	}
}
