package bedrock

// classificationPrompt instructs the model to classify the email and
// extract application details as strict JSON. %s receives the email text.
const classificationPrompt = `Analyze this email and extract information:

STEP 1: Determine if this is a job or internship application email.
Consider these as job/internship emails:
- Application confirmations ("We received your application", "Thank you for applying")
- Interview invitations or scheduling
- Job/internship offers
- Rejection letters ("Unfortunately", "We decided to move forward with other candidates")
- Status updates about applications
- Recruiter outreach for specific positions

NOT job/internship emails:
- Marketing emails or promotions
- Surveys (like usability studies, feedback requests)
- Newsletter subscriptions
- Account notifications (password reset, login alerts)
- General promotional content
- Event invitations unrelated to job applications

STEP 2: If it IS a job/internship email, extract the details. If NOT, leave fields as null.

Return ONLY a JSON object with these fields:
{
    "is_job_application": true or false,
    "reasoning": "brief 1-sentence explanation of your classification",
    "company_name": "company name" or null,
    "job_title": "position title" or null,
    "status": "applied" or "interview" or "offer" or "rejected" or "pending" or null,
    "email_id": "any reference number mentioned" or null
}

Email:
%s
`
