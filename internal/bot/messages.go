package bot

// User-facing texts, centralized. The bot speaks Brazilian Portuguese.
const (
	welcomeMessage = "🎙️ Bot de Transcrição de Áudio\n\n" +
		"Envie um áudio ou mensagem de voz e eu transcrevo para texto!\n\n" +
		"📌 Idiomas: Português (BR), Inglês, Espanhol + auto-detect\n" +
		"📏 Limite: 25MB por áudio\n" +
		"🎯 Precisão: Máxima (temperatura 0)\n\n" +
		"Basta enviar o áudio! 🎧"

	authRequiredMessage = "🔒 Acesso protegido\n\n" +
		"Use /start SUA_SENHA para autenticar.\n\n" +
		"Este bot é de uso pessoal e requer senha."

	authSuccessMessage = "✅ Autenticado com sucesso!\n\n" +
		"🎙️ Agora é só enviar um áudio ou mensagem de voz!\n\n" +
		"📌 Idiomas suportados: Português (BR), Inglês, Espanhol\n" +
		"📏 Limite: 25MB por áudio\n" +
		"🎯 Precisão: Máxima (sem alucinações)\n\n" +
		"Use /help para mais informações."

	authFailedMessage = "❌ Senha incorreta\n\n" +
		"Tente novamente com /start SUA_SENHA.\n\n" +
		"Dica: a senha é definida na variável BOT_PASSWORD."

	helpMessage = "📖 Como usar o bot\n\n" +
		"Comandos:\n" +
		"  /start [senha] — Autenticar\n" +
		"  /help — Esta mensagem\n\n" +
		"Transcrição:\n" +
		"  1. Envie um áudio ou mensagem de voz\n" +
		"  2. Escolha o formato do texto\n" +
		"  3. Receba a transcrição!\n\n" +
		"Idiomas suportados:\n" +
		"  🇧🇷 Português (BR)\n" +
		"  🇺🇸 Inglês\n" +
		"  🇪🇸 Espanhol\n" +
		"  + 50+ idiomas com auto-detect\n\n" +
		"Formatos aceitos:\n" +
		"  MP3, OGG, WAV, M4A, FLAC, AAC, OPUS, WebM\n\n" +
		"Limites:\n" +
		"  📏 Tamanho: 25MB\n" +
		"  ⏱️ Timeout: 5 minutos\n\n" +
		"Precisão:\n" +
		"  🎯 Temperatura 0 (zero alucinações)\n" +
		"  🤖 Sem prompts indutivos\n" +
		"  🌍 Detecção automática de idioma"

	rateLimitedMessage = "⏳ Calma lá!\n\n" +
		"Você atingiu o limite de 5 áudios por minuto.\n" +
		"Aguarde um instante antes de mandar o próximo."

	chooseShapeMessage = "🎙️ Áudio recebido! Como deseja o texto?\n\n" +
		"📄 Resumo: Pontos principais (BLUF)\n" +
		"📋 Ata: Formato corporativo\n" +
		"✍️ Correção: Texto corrigido e formatado\n" +
		"📝 Crua: Transcrição exata do áudio"

	selectionExpiredMessage = "❌ Erro: Áudio expirado ou não encontrado. Envie novamente."

	unknownShapeMessage = "❌ Opção inválida. Envie o áudio novamente."
)
