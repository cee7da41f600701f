package telegram

const welcomeText = `👋 Welcome! I'm your document assistant.

Send me a PDF file and I'll read it so you can ask questions about its content. I can also look up customers, products and bills for you.

Type /help to see everything I can do.`

const helpText = `🤖 Here's what I can do:

📄 Send me a PDF file to add it to your knowledge base
💬 Ask me anything about your uploaded documents
🔍 Ask me about customers, products or bills

Commands:
/start - Show the welcome message
/help - Show this help
/docs - List your uploaded documents
/clear - Clear the conversation history`
